package v1

import (
	"errors"
	"net/http"

	"github.com/credence-finance/backend/internal/httputil"
	"github.com/credence-finance/backend/internal/models"
	"gorm.io/gorm"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate HTTP status for an error.
func status(err error) int {
	if errors.Is(err, errUnauthorized) || errors.Is(err, models.ErrSessionInvalid) {
		return http.StatusUnauthorized
	}

	if errors.Is(err, models.ErrResourceNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if isRequestError(err) {
		return http.StatusBadRequest
	}

	// Database and other unexpected errors
	return http.StatusInternalServerError
}

// isRequestError reports whether an error was caused by the request and is
// therefore the caller's to fix.
func isRequestError(err error) bool {
	for _, requestErr := range []error{
		httputil.ErrInvalidBody,
		httputil.ErrRequestBodyEmpty,
		httputil.ErrInvalidUUID,
		errMonthInvalid,
		errYearInvalid,
		errAnalysisInputMissing,
		models.ErrTransactionKindInvalid,
		models.ErrTransactionAmountNotPositive,
		models.ErrBudgetTotalNegative,
		models.ErrAllocationAmountNegative,
		models.ErrAllocationsExceedTotal,
		models.ErrAllocationCategoryMissing,
	} {
		if errors.Is(err, requestErr) {
			return true
		}
	}

	return false
}

var (
	errUnauthorized = errors.New("you need to provide a valid session token in the Authorization header")
	errMonthInvalid = errors.New("the month must be between 1 and 12")
	errYearInvalid  = errors.New("the year must be between 2000 and 2100")
	errNoBudget     = errors.New("there is no budget for the specified month")
)

// Analysis errors
var errAnalysisInputMissing = errors.New("income, expenses and budget are required for an analysis")
