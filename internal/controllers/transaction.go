package controllers

import (
	"net/http"

	"github.com/budget-envelopes/backend/internal/httputil"
	"github.com/gin-gonic/gin"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func (co Controller) RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetTransactions)
		r.POST("", co.CreateTransaction)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", co.OptionsTransactionDetail)
		r.GET("/:id", co.GetTransaction)
		r.PUT("/:id", co.UpdateTransaction)
		r.DELETE("/:id", co.DeleteTransaction)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/transactions/{id} [options]
func (co Controller) OptionsTransactionDetail(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(err))
		return
	}

	_, err = co.Ledger.Transaction(c.Request.Context(), id)
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	httputil.OptionsGetPutDelete(c)
}

// @Summary		Create transaction
// @Description	Records a withdrawal from an envelope. The envelope balance is decremented by the transaction amount in the same unit of work
// @Tags			Transactions
// @Produce		json
// @Success		201				{object}	TransactionResponse
// @Failure		400				{object}	httpError
// @Failure		404				{object}	httpError
// @Failure		500				{object}	httpError
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Router			/transactions [post]
func (co Controller) CreateTransaction(c *gin.Context) {
	var editable TransactionEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(err))
		return
	}

	transaction, err := co.Ledger.CreateTransaction(c.Request.Context(), editable.model())
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.JSON(http.StatusCreated, TransactionResponse{Data: newTransaction(c, transaction)})
}

// @Summary		Get transactions
// @Description	Returns a list of transactions, newest first
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionListResponse
// @Failure		500	{object}	httpError
// @Router			/transactions [get]
func (co Controller) GetTransactions(c *gin.Context) {
	transactions, err := co.Ledger.Transactions(c.Request.Context())
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	data := make([]Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		data = append(data, newTransaction(c, transaction))
	}

	c.JSON(http.StatusOK, TransactionListResponse{Data: data})
}

// @Summary		Get transaction
// @Description	Returns a specific transaction
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionResponse
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/transactions/{id} [get]
func (co Controller) GetTransaction(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(err))
		return
	}

	transaction, err := co.Ledger.Transaction(c.Request.Context(), id)
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: newTransaction(c, transaction)})
}

// @Summary		Update transaction
// @Description	Amends a recorded transaction. The old amount is reversed and the new amount applied against the envelope given in the request body, in the same unit of work
// @Tags			Transactions
// @Produce		json
// @Success		200				{object}	TransactionResponse
// @Failure		400				{object}	httpError
// @Failure		404				{object}	httpError
// @Failure		500				{object}	httpError
// @Param			id				path		string				true	"ID formatted as string"
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Router			/transactions/{id} [put]
func (co Controller) UpdateTransaction(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(err))
		return
	}

	var editable TransactionEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(err))
		return
	}

	transaction, err := co.Ledger.UpdateTransaction(c.Request.Context(), id, editable.model())
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: newTransaction(c, transaction)})
}

// @Summary		Delete transaction
// @Description	Deletes a transaction and adds its amount back to the owning envelope in the same unit of work
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	MessageResponse
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/transactions/{id} [delete]
func (co Controller) DeleteTransaction(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(err))
		return
	}

	err = co.Ledger.DeleteTransaction(c.Request.Context(), id)
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Transaction deleted"})
}
