package entity

// Category categoría del catálogo (solo referencia).
type Category struct {
	ID   string
	Name string
}
