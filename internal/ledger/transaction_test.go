package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/budget-envelopes/backend/internal/ledger"
	"github.com/budget-envelopes/backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestCreateTransaction() {
	envelope := suite.createTestEnvelope("Groceries", 200)

	transaction, err := suite.ledger.CreateTransaction(context.Background(), models.Transaction{
		EnvelopeID: envelope.ID,
		Recipient:  "Store",
		Amount:     75,
	})
	require.NoError(suite.T(), err)

	assert.NotEqual(suite.T(), uuid.Nil, transaction.ID, "ID is not set")
	assert.Equal(suite.T(), envelope.ID, transaction.EnvelopeID)
	assert.Equal(suite.T(), int64(75), transaction.Amount)

	// The date defaults to the current date
	assert.False(suite.T(), transaction.Date.IsZero())
	assert.Equal(suite.T(), time.UTC, transaction.Date.Location())

	// The envelope balance is decremented in the same unit of work
	updated, err := suite.ledger.Envelope(context.Background(), envelope.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(125), updated.Amount)
}

func (suite *TestSuiteStandard) TestCreateTransactionInvalid() {
	envelope := suite.createTestEnvelope("Groceries", 200)

	tests := []struct {
		name        string             // Name for the test
		transaction models.Transaction // The transaction to create
		err         error              // Expected error
	}{
		{"Missing envelope ID", models.Transaction{Recipient: "Store", Amount: 10}, ledger.ErrEnvelopeIDMissing},
		{"Empty recipient", models.Transaction{EnvelopeID: envelope.ID, Amount: 10}, ledger.ErrRecipientEmpty},
		{"Whitespace recipient", models.Transaction{EnvelopeID: envelope.ID, Recipient: "  ", Amount: 10}, ledger.ErrRecipientEmpty},
		{"Zero amount", models.Transaction{EnvelopeID: envelope.ID, Recipient: "Store"}, ledger.ErrAmountNotPositive},
		{"Negative amount", models.Transaction{EnvelopeID: envelope.ID, Recipient: "X", Amount: -5}, ledger.ErrAmountNotPositive},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			_, err := suite.ledger.CreateTransaction(context.Background(), tt.transaction)
			assert.ErrorIs(t, err, tt.err)

			// No mutation was attempted
			unchanged, err := suite.ledger.Envelope(context.Background(), envelope.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(200), unchanged.Amount)
		})
	}
}

func (suite *TestSuiteStandard) TestCreateTransactionEnvelopeMissing() {
	_, err := suite.ledger.CreateTransaction(context.Background(), models.Transaction{
		EnvelopeID: uuid.New(),
		Recipient:  "Store",
		Amount:     10,
	})
	assert.ErrorIs(suite.T(), err, ledger.ErrEnvelopeNotFound)
}

func (suite *TestSuiteStandard) TestCreateTransactionInsufficientFunds() {
	envelope := suite.createTestEnvelope("Groceries", 50)

	_, err := suite.ledger.CreateTransaction(context.Background(), models.Transaction{
		EnvelopeID: envelope.ID,
		Recipient:  "Store",
		Amount:     75,
	})
	assert.ErrorIs(suite.T(), err, ledger.ErrInsufficientFunds)

	// Neither the balance nor the transaction table changed
	unchanged, err := suite.ledger.Envelope(context.Background(), envelope.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(50), unchanged.Amount)

	transactions, err := suite.ledger.Transactions(context.Background())
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), transactions, 0)
}

func (suite *TestSuiteStandard) TestTransactions() {
	envelope := suite.createTestEnvelope("Groceries", 200)

	older, err := suite.ledger.CreateTransaction(context.Background(), models.Transaction{
		EnvelopeID: envelope.ID,
		Recipient:  "Store",
		Amount:     10,
		Date:       time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(suite.T(), err)

	newer, err := suite.ledger.CreateTransaction(context.Background(), models.Transaction{
		EnvelopeID: envelope.ID,
		Recipient:  "Cafe",
		Amount:     20,
		Date:       time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(suite.T(), err)

	transactions, err := suite.ledger.Transactions(context.Background())
	require.NoError(suite.T(), err)
	require.Len(suite.T(), transactions, 2)

	// Newest first
	assert.Equal(suite.T(), newer.ID, transactions[0].ID)
	assert.Equal(suite.T(), older.ID, transactions[1].ID)
}

func (suite *TestSuiteStandard) TestTransactionNotFound() {
	_, err := suite.ledger.Transaction(context.Background(), uuid.New())
	assert.ErrorIs(suite.T(), err, ledger.ErrTransactionNotFound)
}

// TestTransactionRoundTrip verifies that recording and then deleting a
// transaction restores the envelope balance exactly.
func (suite *TestSuiteStandard) TestTransactionRoundTrip() {
	envelope := suite.createTestEnvelope("Groceries", 200)

	transaction := suite.createTestTransaction(envelope, "Bob", 50)

	decremented, err := suite.ledger.Envelope(context.Background(), envelope.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(150), decremented.Amount)

	err = suite.ledger.DeleteTransaction(context.Background(), transaction.ID)
	require.NoError(suite.T(), err)

	restored, err := suite.ledger.Envelope(context.Background(), envelope.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(200), restored.Amount)
}

// TestTransactionLifecycle walks an envelope through the record, amend,
// delete sequence and verifies the balance after every step.
func (suite *TestSuiteStandard) TestTransactionLifecycle() {
	envelope := suite.createTestEnvelope("Groceries", 200)

	transaction := suite.createTestTransaction(envelope, "Store", 75)

	current, err := suite.ledger.Envelope(context.Background(), envelope.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(125), current.Amount)

	// Raising the amount to 100 withdraws the additional 25
	updated, err := suite.ledger.UpdateTransaction(context.Background(), transaction.ID, models.Transaction{
		EnvelopeID: envelope.ID,
		Recipient:  "Store",
		Amount:     100,
	})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(100), updated.Amount)

	current, err = suite.ledger.Envelope(context.Background(), envelope.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(100), current.Amount)

	// Deleting the transaction returns the full amount
	err = suite.ledger.DeleteTransaction(context.Background(), transaction.ID)
	require.NoError(suite.T(), err)

	current, err = suite.ledger.Envelope(context.Background(), envelope.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(200), current.Amount)
}

func (suite *TestSuiteStandard) TestUpdateTransactionLowerAmount() {
	envelope := suite.createTestEnvelope("Groceries", 200)
	transaction := suite.createTestTransaction(envelope, "Store", 75)

	_, err := suite.ledger.UpdateTransaction(context.Background(), transaction.ID, models.Transaction{
		EnvelopeID: envelope.ID,
		Recipient:  "Store",
		Amount:     50,
	})
	require.NoError(suite.T(), err)

	// 200 - 50: the difference of 25 flowed back
	current, err := suite.ledger.Envelope(context.Background(), envelope.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(150), current.Amount)
}

// TestUpdateTransactionOtherEnvelope pins down the reconciliation
// behavior when the envelope supplied for an amendment is not the
// envelope the transaction was recorded against: both the reversal and
// the new charge are applied to the supplied envelope, and the
// transaction row keeps its original envelope.
func (suite *TestSuiteStandard) TestUpdateTransactionOtherEnvelope() {
	original := suite.createTestEnvelope("Groceries", 100)
	other := suite.createTestEnvelope("Rent", 50)

	transaction := suite.createTestTransaction(original, "Store", 40)

	updated, err := suite.ledger.UpdateTransaction(context.Background(), transaction.ID, models.Transaction{
		EnvelopeID: other.ID,
		Recipient:  "Store",
		Amount:     10,
	})
	require.NoError(suite.T(), err)

	// The row still belongs to the original envelope
	assert.Equal(suite.T(), original.ID, updated.EnvelopeID)

	// The original envelope is untouched, the supplied envelope
	// received the net difference of 30
	unchanged, err := suite.ledger.Envelope(context.Background(), original.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(60), unchanged.Amount)

	adjusted, err := suite.ledger.Envelope(context.Background(), other.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(80), adjusted.Amount)
}

func (suite *TestSuiteStandard) TestUpdateTransactionInsufficientFunds() {
	envelope := suite.createTestEnvelope("Groceries", 100)
	transaction := suite.createTestTransaction(envelope, "Store", 40)

	// Raising the amount by more than the remaining balance fails and
	// rolls back completely
	_, err := suite.ledger.UpdateTransaction(context.Background(), transaction.ID, models.Transaction{
		EnvelopeID: envelope.ID,
		Recipient:  "Store",
		Amount:     200,
	})
	assert.ErrorIs(suite.T(), err, ledger.ErrInsufficientFunds)

	unchanged, err := suite.ledger.Envelope(context.Background(), envelope.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(60), unchanged.Amount)

	kept, err := suite.ledger.Transaction(context.Background(), transaction.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(40), kept.Amount)
}

func (suite *TestSuiteStandard) TestUpdateTransactionNotFound() {
	envelope := suite.createTestEnvelope("Groceries", 100)

	_, err := suite.ledger.UpdateTransaction(context.Background(), uuid.New(), models.Transaction{
		EnvelopeID: envelope.ID,
		Recipient:  "Store",
		Amount:     10,
	})
	assert.ErrorIs(suite.T(), err, ledger.ErrTransactionNotFound)
}

func (suite *TestSuiteStandard) TestUpdateTransactionEnvelopeMissing() {
	envelope := suite.createTestEnvelope("Groceries", 100)
	transaction := suite.createTestTransaction(envelope, "Store", 40)

	_, err := suite.ledger.UpdateTransaction(context.Background(), transaction.ID, models.Transaction{
		EnvelopeID: uuid.New(),
		Recipient:  "Store",
		Amount:     10,
	})
	assert.ErrorIs(suite.T(), err, ledger.ErrEnvelopeNotFound)
}

func (suite *TestSuiteStandard) TestDeleteTransactionNotFound() {
	err := suite.ledger.DeleteTransaction(context.Background(), uuid.New())
	assert.ErrorIs(suite.T(), err, ledger.ErrTransactionNotFound)
}
