// Package controllers implements the HTTP request surface. Handlers
// parse and validate input, invoke the ledger, and map results and
// errors to responses. All business rules live in the ledger package.
package controllers

import (
	"errors"
	"net/http"

	"github.com/budget-envelopes/backend/internal/ledger"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// Controller carries the ledger handle for all request handlers.
type Controller struct {
	Ledger *ledger.Ledger
}

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// newHTTPError creates the error response body for an error.
func newHTTPError(err error) httpError {
	return httpError{
		Error: err.Error(),
	}
}

// notFoundErrors are the errors that translate to a 404.
var notFoundErrors = []error{ledger.ErrEnvelopeNotFound, ledger.ErrTransactionNotFound}

// status returns the appropriate HTTP status for a ledger error.
func status(err error) int {
	if errors.Is(err, ledger.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if slices.ContainsFunc(notFoundErrors, func(sentinel error) bool { return errors.Is(err, sentinel) }) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// @Summary		Get health
// @Description	Returns the application health and, if not healthy, an error
// @Tags			General
// @Success		204
// @Failure		500	{object}	httpError
// @Router			/healthz [get]
func (co Controller) GetHealth(c *gin.Context) {
	err := co.Ledger.Ping(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, newHTTPError(ledger.ErrGeneral))
		return
	}

	c.Status(http.StatusNoContent)
}
