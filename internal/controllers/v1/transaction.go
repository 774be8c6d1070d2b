package v1

import (
	"net/http"
	"strings"

	"github.com/credence-finance/backend/internal/categories"
	"github.com/credence-finance/backend/internal/httputil"
	"github.com/credence-finance/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/ryanuber/go-glob"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsTransactionList)
		r.GET("", GetTransactions)
		r.POST("", CreateTransaction)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", OptionsTransactionDetail)
		r.GET("/:id", GetTransaction)
		r.PATCH("/:id", UpdateTransaction)
		r.DELETE("/:id", DeleteTransaction)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/v1/transactions [options]
func OptionsTransactionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/transactions/{id} [options]
func OptionsTransactionDetail(c *gin.Context) {
	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create transaction
// @Description	Creates a new transaction and applies its effect to the balance
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		201			{object}	TransactionResponse
// @Failure		400			{object}	TransactionResponse
// @Failure		401			{object}	httpError
// @Failure		500			{object}	TransactionResponse
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Security		BearerAuth
// @Router			/v1/transactions [post]
func CreateTransaction(c *gin.Context) {
	var editable TransactionEditable
	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	transaction := editable.model(currentUser(c))
	if err := models.DB.Create(&transaction).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	if err := models.OnTransactionCreated(models.DB, transaction); err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	data := newTransaction(transaction)
	c.JSON(http.StatusCreated, TransactionResponse{Data: &data})
}

// @Summary		Get transactions
// @Description	Returns the transactions of the authenticated user, newest first
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionListResponse
// @Failure		400	{object}	TransactionListResponse
// @Failure		401	{object}	httpError
// @Failure		500	{object}	TransactionListResponse
// @Param			category	query	string	false	"Filter by category, key or display name"
// @Param			kind		query	string	false	"Filter by transaction kind"
// @Param			search		query	string	false	"Glob match on description and category"
// @Param			offset		query	uint	false	"The offset of the first transaction returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of transactions to return. Defaults to 50."
// @Security		BearerAuth
// @Router			/v1/transactions [get]
func GetTransactions(c *gin.Context) {
	var filter TransactionQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, TransactionListResponse{Error: &s})
		return
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	q := models.DB.
		Where(&models.Transaction{UserID: currentUser(c).ID}).
		Order("datetime(transactions.date) DESC, datetime(transactions.created_at) DESC").
		Offset(int(filter.Offset)).
		Limit(limit)

	if filter.Category != "" && filter.Category != "all" {
		q = q.Where("category = ?", categories.ToInternalKey(filter.Category))
	}

	if filter.Kind != "" && filter.Kind != "all" {
		q = q.Where("kind = ?", filter.Kind)
	}

	var transactions []models.Transaction
	if err := q.Find(&transactions).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &e})
		return
	}

	data := make([]Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		t := newTransaction(transaction)

		if filter.Search != "" && !matchesSearch(filter.Search, t) {
			continue
		}

		data = append(data, t)
	}

	c.JSON(http.StatusOK, TransactionListResponse{Data: data})
}

// matchesSearch matches the search pattern against the description and the
// display category, case-insensitively. The pattern supports "*" globs.
func matchesSearch(pattern string, t Transaction) bool {
	pattern = "*" + strings.ToLower(strings.Trim(pattern, "*")) + "*"

	return glob.Glob(pattern, strings.ToLower(t.Description)) ||
		glob.Glob(pattern, strings.ToLower(t.Category))
}

// @Summary		Get transaction
// @Description	Returns a specific transaction
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionResponse
// @Failure		400	{object}	TransactionResponse
// @Failure		401	{object}	httpError
// @Failure		404	{object}	TransactionResponse
// @Failure		500	{object}	TransactionResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Security		BearerAuth
// @Router			/v1/transactions/{id} [get]
func GetTransaction(c *gin.Context) {
	transaction, err := getUserTransaction(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	data := newTransaction(transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &data})
}

// @Summary		Update transaction
// @Description	Replaces kind, amount, category and description of a transaction and applies the effect difference to the balance
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		200			{object}	TransactionResponse
// @Failure		400			{object}	TransactionResponse
// @Failure		401			{object}	httpError
// @Failure		404			{object}	TransactionResponse
// @Failure		500			{object}	TransactionResponse
// @Param			id			path		string				true	"ID formatted as string"
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Security		BearerAuth
// @Router			/v1/transactions/{id} [patch]
func UpdateTransaction(c *gin.Context) {
	transaction, err := getUserTransaction(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	var editable TransactionEditable
	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	old := transaction

	transaction.Kind = editable.Kind
	transaction.Amount = editable.Amount
	transaction.Category = categories.ToInternalKey(editable.Category)
	transaction.Description = editable.Description
	if !editable.Date.IsZero() {
		transaction.Date = editable.Date
	}

	if err := models.DB.Save(&transaction).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	if err := models.OnTransactionUpdated(models.DB, old, transaction); err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	data := newTransaction(transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &data})
}

// @Summary		Delete transaction
// @Description	Deletes a transaction and reverses its effect on the balance
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		401	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Security		BearerAuth
// @Router			/v1/transactions/{id} [delete]
func DeleteTransaction(c *gin.Context) {
	transaction, err := getUserTransaction(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Delete(&transaction).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.OnTransactionDeleted(models.DB, transaction); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// getUserTransaction reads the transaction from the :id URI parameter,
// scoped to the authenticated user.
func getUserTransaction(c *gin.Context) (models.Transaction, error) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		return models.Transaction{}, httputil.ErrInvalidUUID
	}

	id, err := uri.parse()
	if err != nil {
		return models.Transaction{}, err
	}

	var transaction models.Transaction
	err = models.DB.
		Where(&models.Transaction{UserID: currentUser(c).ID}).
		First(&transaction, "transactions.id = ?", id).Error
	if err != nil {
		return models.Transaction{}, err
	}

	return transaction, nil
}
