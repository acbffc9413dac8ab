package controllers

import (
	"fmt"

	"github.com/budget-envelopes/backend/internal/httputil"
	"github.com/budget-envelopes/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// EnvelopeEditable contains the fields callers can set on an envelope.
type EnvelopeEditable struct {
	Name   string `json:"name" example:"Groceries"` // Name of the envelope
	Amount int64  `json:"amount" example:"200"`     // Balance of the envelope
}

type EnvelopeLinks struct {
	Self string `json:"self" example:"https://example.com/envelopes/3b1ea324-d438-4419-882a-2fc91d71772f"` // The envelope itself
}

// Envelope is the API representation of an envelope.
type Envelope struct {
	models.Envelope
	Links EnvelopeLinks `json:"links"`
}

// newEnvelope returns the API representation of an envelope.
func newEnvelope(c *gin.Context, model models.Envelope) Envelope {
	return Envelope{
		Envelope: model,
		Links: EnvelopeLinks{
			Self: fmt.Sprintf("%s/envelopes/%s", httputil.RequestHost(c), model.ID),
		},
	}
}

type EnvelopeResponse struct {
	Data Envelope `json:"data"` // The envelope
}

type EnvelopeListResponse struct {
	Data []Envelope `json:"data"` // List of envelopes
}

// TransferEditable is the request body for a transfer between two
// envelopes.
type TransferEditable struct {
	Amount int64 `json:"amount" example:"40"` // The amount to move from the source to the destination envelope
}

// TransferResponse confirms a transfer and contains both updated
// envelopes.
type TransferResponse struct {
	Message     string   `json:"message" example:"Transferred 40 from envelope 3b1ea324-d438-4419-882a-2fc91d71772f to 65392deb-5e92-4268-b114-297faad6cdce"`
	Source      Envelope `json:"source"`      // The updated source envelope
	Destination Envelope `json:"destination"` // The updated destination envelope
}
