package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/grocery-pos/internal/domain"
	"github.com/jhoicas/grocery-pos/internal/domain/entity"
	"github.com/jhoicas/grocery-pos/internal/domain/repository"
	"github.com/jhoicas/grocery-pos/pkg/jwt"
	"github.com/jhoicas/grocery-pos/pkg/logger"
)

const minPasswordLen = 6

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// LoginResult token emitido y operador autenticado.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *entity.User
}

// AuthUseCase alta de operadores y login con usuario/contraseña.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	cost     int
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, cost: bcrypt.DefaultCost, log: log}
}

// CreateUser crea un operador: hashea la contraseña con bcrypt y persiste.
// Devuelve domain.ErrDuplicate si el username ya existe (sin distinguir mayúsculas).
func (uc *AuthUseCase) CreateUser(ctx context.Context, username, password, role string) (*entity.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, domain.Invalid("username", "requerido")
	}
	if len(password) < minPasswordLen {
		return nil, domain.Invalid("password", "mínimo 6 caracteres")
	}
	if role == "" {
		role = entity.RoleStaff
	}
	if !entity.ValidRole(role) {
		return nil, domain.Invalid("role", "debe ser admin o staff")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.cost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now(),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("username", username).Str("role", role).Msg("operador creado")
	return user, nil
}

// EnsureUser devuelve el operador si ya existe; si no, lo crea con esa contraseña.
func (uc *AuthUseCase) EnsureUser(ctx context.Context, username, password, role string) (*entity.User, error) {
	existing, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	return uc.CreateUser(ctx, username, password, role)
}

// Login verifica usuario/contraseña y genera el JWT. Usuario inexistente y contraseña
// incorrecta devuelven el mismo domain.ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == "" {
		uc.log.Warn().Str("username", username).Msg("login rechazado")
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, err
		}
		uc.log.Warn().Str("username", username).Msg("login rechazado")
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		Token:     token,
		ExpiresAt: time.Now().Add(time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute),
		User:      user,
	}, nil
}
