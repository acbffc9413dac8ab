package ledger

import (
	"context"
	"strings"

	"github.com/budget-envelopes/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateTransaction records a withdrawal from an envelope. The envelope
// balance is decremented and the transaction row inserted in the same
// unit of work.
func (l *Ledger) CreateTransaction(ctx context.Context, create models.Transaction) (models.Transaction, error) {
	err := validateTransaction(create)
	if err != nil {
		return models.Transaction{}, err
	}

	err = l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := subtractBalance(tx, create.EnvelopeID, create.Amount)
		if err != nil {
			return err
		}

		return tx.Omit("Envelope").Create(&create).Error
	})
	if err != nil {
		return models.Transaction{}, err
	}

	return create, nil
}

// Transactions returns all transactions, newest first.
func (l *Ledger) Transactions(ctx context.Context) ([]models.Transaction, error) {
	var transactions []models.Transaction

	err := l.db.WithContext(ctx).Order("date DESC").Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	return transactions, nil
}

// Transaction returns the transaction with the given ID.
func (l *Ledger) Transaction(ctx context.Context, id uuid.UUID) (models.Transaction, error) {
	var transaction models.Transaction

	err := l.db.WithContext(ctx).First(&transaction, "id = ?", id).Error
	if err != nil {
		return models.Transaction{}, err
	}

	return transaction, nil
}

// UpdateTransaction amends a recorded transaction. The old amount is
// reversed and the new amount applied in the same unit of work.
//
// Both the reversal and the new charge are applied to the envelope ID
// supplied by the caller, and the transaction row keeps its original
// envelope. When the supplied envelope differs from the owning one this
// shifts money between the two envelopes' recorded and actual balances;
// callers are responsible for supplying the correct envelope. This
// matches the long-standing behavior of the API.
func (l *Ledger) UpdateTransaction(ctx context.Context, id uuid.UUID, update models.Transaction) (models.Transaction, error) {
	err := validateTransaction(update)
	if err != nil {
		return models.Transaction{}, err
	}

	var transaction models.Transaction
	err = l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&transaction, "id = ?", id).Error
		if err != nil {
			return err
		}

		// The target envelope must exist even when no balance delta
		// needs to be applied to it
		err = tx.First(&models.Envelope{}, "id = ?", update.EnvelopeID).Error
		if err != nil {
			return err
		}

		// Net effect of reversing the old amount and charging the new
		// one, applied as a single guarded statement
		delta := update.Amount - transaction.Amount
		if delta > 0 {
			err = subtractBalance(tx, update.EnvelopeID, delta)
		} else if delta < 0 {
			err = addBalance(tx, update.EnvelopeID, -delta)
		}
		if err != nil {
			return err
		}

		transaction.Recipient = update.Recipient
		transaction.Amount = update.Amount
		transaction.Date = update.Date
		return tx.Omit("Envelope").Save(&transaction).Error
	})
	if err != nil {
		return models.Transaction{}, err
	}

	return transaction, nil
}

// DeleteTransaction removes a transaction and adds its amount back to
// the owning envelope in the same unit of work.
func (l *Ledger) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var transaction models.Transaction
		err := tx.First(&transaction, "id = ?", id).Error
		if err != nil {
			return err
		}

		err = addBalance(tx, transaction.EnvelopeID, transaction.Amount)
		if err != nil {
			return err
		}

		return tx.Delete(&transaction).Error
	})
}

func validateTransaction(t models.Transaction) error {
	if t.EnvelopeID == uuid.Nil {
		return ErrEnvelopeIDMissing
	}

	if strings.TrimSpace(t.Recipient) == "" {
		return ErrRecipientEmpty
	}

	if t.Amount <= 0 {
		return ErrAmountNotPositive
	}

	return nil
}
