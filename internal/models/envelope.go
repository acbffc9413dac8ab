package models

import (
	"strings"

	"gorm.io/gorm"
)

// Envelope represents a named budget bucket. Its Amount is the current
// balance and must never become negative.
type Envelope struct {
	DefaultModel
	Name   string `json:"name" gorm:"not null" example:"Groceries"`                           // Name of the envelope
	Amount int64  `json:"amount" gorm:"not null;check:amount_non_negative,amount >= 0" example:"200"` // Current balance of the envelope
}

// BeforeSave trims whitespace from the name.
func (e *Envelope) BeforeSave(_ *gorm.DB) error {
	e.Name = strings.TrimSpace(e.Name)
	return nil
}
