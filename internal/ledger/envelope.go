package ledger

import (
	"context"
	"strings"

	"github.com/budget-envelopes/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateEnvelope creates a new envelope with the given starting balance.
func (l *Ledger) CreateEnvelope(ctx context.Context, name string, amount int64) (models.Envelope, error) {
	if strings.TrimSpace(name) == "" {
		return models.Envelope{}, ErrNameEmpty
	}

	if amount < 0 {
		return models.Envelope{}, ErrAmountNegative
	}

	envelope := models.Envelope{Name: name, Amount: amount}
	err := l.db.WithContext(ctx).Create(&envelope).Error
	if err != nil {
		return models.Envelope{}, err
	}

	return envelope, nil
}

// Envelopes returns all envelopes.
func (l *Ledger) Envelopes(ctx context.Context) ([]models.Envelope, error) {
	var envelopes []models.Envelope

	err := l.db.WithContext(ctx).Order("name ASC").Find(&envelopes).Error
	if err != nil {
		return nil, err
	}

	return envelopes, nil
}

// Envelope returns the envelope with the given ID.
func (l *Ledger) Envelope(ctx context.Context, id uuid.UUID) (models.Envelope, error) {
	var envelope models.Envelope

	err := l.db.WithContext(ctx).First(&envelope, "id = ?", id).Error
	if err != nil {
		return models.Envelope{}, err
	}

	return envelope, nil
}

// UpdateEnvelope overwrites the name and amount of an envelope.
//
// The amount is set directly, it is not derived from the recorded
// transactions.
func (l *Ledger) UpdateEnvelope(ctx context.Context, id uuid.UUID, name string, amount int64) (models.Envelope, error) {
	if strings.TrimSpace(name) == "" {
		return models.Envelope{}, ErrNameEmpty
	}

	if amount < 0 {
		return models.Envelope{}, ErrAmountNegative
	}

	var envelope models.Envelope
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&envelope, "id = ?", id).Error
		if err != nil {
			return err
		}

		envelope.Name = name
		envelope.Amount = amount
		return tx.Save(&envelope).Error
	})
	if err != nil {
		return models.Envelope{}, err
	}

	return envelope, nil
}

// DeleteEnvelope removes an envelope and all transactions recorded
// against it.
func (l *Ledger) DeleteEnvelope(ctx context.Context, id uuid.UUID) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var envelope models.Envelope
		err := tx.First(&envelope, "id = ?", id).Error
		if err != nil {
			return err
		}

		// The foreign key cascades on delete, too. Deleting explicitly
		// keeps one code path for both database drivers.
		err = tx.Where("envelope_id = ?", id).Delete(&models.Transaction{}).Error
		if err != nil {
			return err
		}

		return tx.Delete(&envelope).Error
	})
}

// Subtract withdraws an amount from an envelope without recording a
// transaction. It returns the updated envelope.
func (l *Ledger) Subtract(ctx context.Context, id uuid.UUID, amount int64) (models.Envelope, error) {
	if amount <= 0 {
		return models.Envelope{}, ErrAmountNotPositive
	}

	var envelope models.Envelope
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := subtractBalance(tx, id, amount)
		if err != nil {
			return err
		}

		return tx.First(&envelope, "id = ?", id).Error
	})
	if err != nil {
		return models.Envelope{}, err
	}

	return envelope, nil
}

// Transfer moves an amount between two envelopes. Both mutations happen
// in the same unit of work: either both balances change or neither
// does. It returns the updated source and destination envelopes.
func (l *Ledger) Transfer(ctx context.Context, from, to uuid.UUID, amount int64) (models.Envelope, models.Envelope, error) {
	if amount <= 0 {
		return models.Envelope{}, models.Envelope{}, ErrAmountNotPositive
	}

	var source, destination models.Envelope
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Both envelopes must exist before any money moves
		err := tx.First(&source, "id = ?", from).Error
		if err != nil {
			return err
		}

		err = tx.First(&destination, "id = ?", to).Error
		if err != nil {
			return err
		}

		err = subtractBalance(tx, from, amount)
		if err != nil {
			return err
		}

		err = addBalance(tx, to, amount)
		if err != nil {
			return err
		}

		err = tx.First(&source, "id = ?", from).Error
		if err != nil {
			return err
		}

		return tx.First(&destination, "id = ?", to).Error
	})
	if err != nil {
		return models.Envelope{}, models.Envelope{}, err
	}

	return source, destination, nil
}

// subtractBalance decrements an envelope balance.
//
// The non-negativity check is part of the update statement itself, so
// two concurrent subtractions can never both pass a check against a
// stale balance and jointly drive the balance negative.
func subtractBalance(tx *gorm.DB, id uuid.UUID, amount int64) error {
	res := tx.Model(&models.Envelope{}).
		Where("id = ? AND amount >= ?", id, amount).
		Update("amount", gorm.Expr("amount - ?", amount))
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		// The guard rejects both unknown envelopes and insufficient
		// balances, distinguish the two
		err := tx.First(&models.Envelope{}, "id = ?", id).Error
		if err != nil {
			return err
		}

		return ErrInsufficientFunds
	}

	return nil
}

// addBalance increments an envelope balance.
func addBalance(tx *gorm.DB, id uuid.UUID, amount int64) error {
	res := tx.Model(&models.Envelope{}).
		Where("id = ?", id).
		Update("amount", gorm.Expr("amount + ?", amount))
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrEnvelopeNotFound
	}

	return nil
}
