package entity

import (
	"github.com/google/uuid"
)

type Address struct {
	Base
	UserID     uuid.UUID `db:"user_id" json:"-"`
	Label      string    `db:"label" json:"label"`
	Line1      string    `db:"line1" json:"line1"`
	Line2      string    `db:"line2" json:"line2,omitempty"`
	City       string    `db:"city" json:"city"`
	State      string    `db:"state" json:"state,omitempty"`
	PostalCode string    `db:"postal_code" json:"postalCode,omitempty"`
	Latitude   *float64  `db:"latitude" json:"latitude,omitempty"`
	Longitude  *float64  `db:"longitude" json:"longitude,omitempty"`
}
