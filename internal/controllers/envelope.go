package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/budget-envelopes/backend/internal/httputil"
	"github.com/gin-gonic/gin"
)

var errSubtractNotPositive = errors.New("the subtract query parameter must be a number greater than 0")

// RegisterEnvelopeRoutes registers the routes for envelopes with
// the RouterGroup that is passed.
func (co Controller) RegisterEnvelopeRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetEnvelopes)
		r.POST("", co.CreateEnvelope)
	}

	// Transfer between two envelopes
	{
		r.OPTIONS("/transfer/:from/:to", httputil.OptionsPost)
		r.POST("/transfer/:from/:to", co.TransferBetweenEnvelopes)
	}

	// Envelope with ID
	{
		r.OPTIONS("/:id", co.OptionsEnvelopeDetail)
		r.GET("/:id", co.GetEnvelope)
		r.PUT("/:id", co.UpdateEnvelope)
		r.DELETE("/:id", co.DeleteEnvelope)
		r.POST("/:id", co.SubtractFromEnvelope)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Envelopes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/envelopes/{id} [options]
func (co Controller) OptionsEnvelopeDetail(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(err))
		return
	}

	_, err = co.Ledger.Envelope(c.Request.Context(), id)
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	httputil.OptionsGetPostPutDelete(c)
}

// @Summary		Create envelope
// @Description	Creates a new envelope with a starting balance
// @Tags			Envelopes
// @Produce		json
// @Success		201			{object}	EnvelopeResponse
// @Failure		400			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			envelope	body		EnvelopeEditable	true	"Envelope"
// @Router			/envelopes [post]
func (co Controller) CreateEnvelope(c *gin.Context) {
	var editable EnvelopeEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(err))
		return
	}

	envelope, err := co.Ledger.CreateEnvelope(c.Request.Context(), editable.Name, editable.Amount)
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.JSON(http.StatusCreated, EnvelopeResponse{Data: newEnvelope(c, envelope)})
}

// @Summary		Get envelopes
// @Description	Returns a list of envelopes
// @Tags			Envelopes
// @Produce		json
// @Success		200	{object}	EnvelopeListResponse
// @Failure		500	{object}	httpError
// @Router			/envelopes [get]
func (co Controller) GetEnvelopes(c *gin.Context) {
	envelopes, err := co.Ledger.Envelopes(c.Request.Context())
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	data := make([]Envelope, 0, len(envelopes))
	for _, envelope := range envelopes {
		data = append(data, newEnvelope(c, envelope))
	}

	c.JSON(http.StatusOK, EnvelopeListResponse{Data: data})
}

// @Summary		Get envelope
// @Description	Returns a specific envelope
// @Tags			Envelopes
// @Produce		json
// @Success		200	{object}	EnvelopeResponse
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/envelopes/{id} [get]
func (co Controller) GetEnvelope(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(err))
		return
	}

	envelope, err := co.Ledger.Envelope(c.Request.Context(), id)
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.JSON(http.StatusOK, EnvelopeResponse{Data: newEnvelope(c, envelope)})
}

// @Summary		Update envelope
// @Description	Overwrites the name and balance of an envelope. The balance is set directly, it is not derived from recorded transactions
// @Tags			Envelopes
// @Produce		json
// @Success		200			{object}	EnvelopeResponse
// @Failure		400			{object}	httpError
// @Failure		404			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			id			path		string				true	"ID formatted as string"
// @Param			envelope	body		EnvelopeEditable	true	"Envelope"
// @Router			/envelopes/{id} [put]
func (co Controller) UpdateEnvelope(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(err))
		return
	}

	var editable EnvelopeEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(err))
		return
	}

	envelope, err := co.Ledger.UpdateEnvelope(c.Request.Context(), id, editable.Name, editable.Amount)
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.JSON(http.StatusOK, EnvelopeResponse{Data: newEnvelope(c, envelope)})
}

// @Summary		Delete envelope
// @Description	Deletes an envelope and all transactions recorded against it
// @Tags			Envelopes
// @Success		200
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/envelopes/{id} [delete]
func (co Controller) DeleteEnvelope(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(err))
		return
	}

	err = co.Ledger.DeleteEnvelope(c.Request.Context(), id)
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.Status(http.StatusOK)
}

// @Summary		Subtract from envelope
// @Description	Withdraws the amount given in the subtract query parameter from the envelope without recording a transaction
// @Tags			Envelopes
// @Produce		json
// @Success		200			{object}	EnvelopeResponse
// @Failure		400			{object}	httpError
// @Failure		404			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			id			path		string	true	"ID formatted as string"
// @Param			subtract	query		int		true	"Amount to withdraw, must be greater than 0"
// @Router			/envelopes/{id} [post]
func (co Controller) SubtractFromEnvelope(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(err))
		return
	}

	subtract, err := strconv.ParseInt(c.Query("subtract"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(errSubtractNotPositive))
		return
	}

	envelope, err := co.Ledger.Subtract(c.Request.Context(), id, subtract)
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.JSON(http.StatusOK, EnvelopeResponse{Data: newEnvelope(c, envelope)})
}

// @Summary		Transfer between envelopes
// @Description	Moves the amount in the request body from the source to the destination envelope. Transfers are not recorded as transactions
// @Tags			Envelopes
// @Produce		json
// @Success		200			{object}	TransferResponse
// @Failure		400			{object}	httpError
// @Failure		404			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			from		path		string				true	"ID of the source envelope"
// @Param			to			path		string				true	"ID of the destination envelope"
// @Param			transfer	body		TransferEditable	true	"Transfer"
// @Router			/envelopes/transfer/{from}/{to} [post]
func (co Controller) TransferBetweenEnvelopes(c *gin.Context) {
	from, err := httputil.UUIDFromString(c.Param("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(err))
		return
	}

	to, err := httputil.UUIDFromString(c.Param("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(err))
		return
	}

	var editable TransferEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(err))
		return
	}

	source, destination, err := co.Ledger.Transfer(c.Request.Context(), from, to, editable.Amount)
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.JSON(http.StatusOK, TransferResponse{
		Message:     fmt.Sprintf("Transferred %d from envelope %s to %s", editable.Amount, source.ID, destination.ID),
		Source:      newEnvelope(c, source),
		Destination: newEnvelope(c, destination),
	})
}
