package domain

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       float64
	Category    string
	ImageURL    string
	AccentColor string
	IsActive    bool
	CreatedAt   time.Time
}
