package entity

import "time"

// Category representa una categoría de productos. Solo se usa para agrupar reportes.
type Category struct {
	ID        string
	CompanyID string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
