package controllers

import (
	"fmt"
	"time"

	"github.com/budget-envelopes/backend/internal/httputil"
	"github.com/budget-envelopes/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TransactionEditable contains the fields callers can set on a
// transaction.
type TransactionEditable struct {
	EnvelopeID uuid.UUID `json:"envelope_id" example:"2649c965-7999-4873-ae16-89d5d5fa972e"` // ID of the envelope the amount is withdrawn from
	Recipient  string    `json:"recipient" example:"Corner Store"`                           // Who receives the money
	Amount     int64     `json:"amount" example:"75"`                                        // The amount to withdraw, must be greater than 0
	Date       time.Time `json:"date" example:"2024-03-20T00:00:00Z"`                        // Date of the transaction. Defaults to the current date
}

// model returns the database resource for the editable fields.
func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		EnvelopeID: editable.EnvelopeID,
		Recipient:  editable.Recipient,
		Amount:     editable.Amount,
		Date:       editable.Date,
	}
}

type TransactionLinks struct {
	Self     string `json:"self" example:"https://example.com/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"`  // The transaction itself
	Envelope string `json:"envelope" example:"https://example.com/envelopes/2649c965-7999-4873-ae16-89d5d5fa972e"` // The envelope the transaction was withdrawn from
}

// Transaction is the API representation of a transaction.
type Transaction struct {
	models.Transaction
	Links TransactionLinks `json:"links"`
}

// newTransaction returns the API representation of a transaction.
func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	url := httputil.RequestHost(c)

	return Transaction{
		Transaction: model,
		Links: TransactionLinks{
			Self:     fmt.Sprintf("%s/transactions/%s", url, model.ID),
			Envelope: fmt.Sprintf("%s/envelopes/%s", url, model.EnvelopeID),
		},
	}
}

type TransactionResponse struct {
	Data Transaction `json:"data"` // The transaction
}

type TransactionListResponse struct {
	Data []Transaction `json:"data"` // List of transactions
}

// MessageResponse is returned by endpoints that only confirm an action.
type MessageResponse struct {
	Message string `json:"message" example:"Transaction deleted"`
}
