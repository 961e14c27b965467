package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/grocery-pos/internal/domain"
	"github.com/jhoicas/grocery-pos/internal/domain/entity"
	"github.com/jhoicas/grocery-pos/internal/infrastructure/memory"
	"github.com/jhoicas/grocery-pos/pkg/jwt"
	"github.com/jhoicas/grocery-pos/pkg/logger"
)

const testSecret = "test-secret"

func newUseCase() *AuthUseCase {
	uc := NewAuthUseCase(memory.NewStore().Users(), JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "grocery-pos"}, logger.Nop())
	uc.cost = bcrypt.MinCost
	return uc
}

func TestLogin_EmiteTokenDelOperador(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()
	user, err := uc.CreateUser(ctx, "Ravi", "secreto1", entity.RoleStaff)
	require.NoError(t, err)
	assert.NotEqual(t, "secreto1", user.PasswordHash)

	res, err := uc.Login(ctx, "ravi", "secreto1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, res.User.ID)

	userID, role, err := jwt.Parse(testSecret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, entity.RoleStaff, role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()
	_, err := uc.CreateUser(ctx, "ravi", "secreto1", "")
	require.NoError(t, err)

	_, err = uc.Login(ctx, "ravi", "otra-clave")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, "nadie", "secreto1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestCreateUser_Validaciones(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	_, err := uc.CreateUser(ctx, " ", "secreto1", entity.RoleStaff)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.CreateUser(ctx, "ravi", "123", entity.RoleStaff)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.CreateUser(ctx, "ravi", "secreto1", "gerente")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateUser(ctx, "ravi", "secreto1", entity.RoleStaff)
	require.NoError(t, err)
	_, err = uc.CreateUser(ctx, "RAVI", "secreto2", entity.RoleStaff)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestEnsureUser_Idempotente(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	first, err := uc.EnsureUser(ctx, "admin", "admin123", entity.RoleAdmin)
	require.NoError(t, err)
	again, err := uc.EnsureUser(ctx, "admin", "cambiada", entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	_, err = uc.Login(ctx, "admin", "admin123")
	assert.NoError(t, err)
}
