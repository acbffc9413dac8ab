package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transaction represents a withdrawal from an envelope to a recipient.
//
// A transaction only exists if its amount has already been subtracted
// from the owning envelope, so amending or deleting one always adjusts
// the envelope balance in the same unit of work.
type Transaction struct {
	DefaultModel
	EnvelopeID uuid.UUID `json:"envelope_id" gorm:"not null" example:"2649c965-7999-4873-ae16-89d5d5fa972e"` // ID of the envelope the amount was withdrawn from
	Envelope   Envelope  `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Recipient  string    `json:"recipient" gorm:"not null" example:"Corner Store"`                    // Who received the money
	Amount     int64     `json:"amount" gorm:"not null;check:amount_positive,amount > 0" example:"75"` // The amount withdrawn from the envelope
	Date       time.Time `json:"date" gorm:"not null" example:"2024-03-20T00:00:00Z"`                 // Date of the transaction. Defaults to the current date
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (t *Transaction) AfterFind(tx *gorm.DB) error {
	err := t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return nil
}

// BeforeSave
//   - defaults the Date to the current date
//   - sets the timezone for the Date to UTC
//   - trims whitespace from the recipient
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Recipient = strings.TrimSpace(t.Recipient)

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	return nil
}
