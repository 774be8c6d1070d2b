package v1

import (
	"time"

	"github.com/credence-finance/backend/internal/types"
	"github.com/google/uuid"

	"github.com/credence-finance/backend/internal/httputil"
)

type URIID struct {
	ID string `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

// parse returns the ID as UUID.
func (u URIID) parse() (uuid.UUID, error) {
	id, err := uuid.Parse(u.ID)
	if err != nil {
		return uuid.Nil, httputil.ErrInvalidUUID
	}

	return id, nil
}

// PeriodQuery identifies one budgeting period by month and year.
// Both default to the current month when unset.
type PeriodQuery struct {
	Month int `form:"month" example:"3"`    // Month, 1 to 12
	Year  int `form:"year" example:"2024"`  // Year, 2000 to 2100
}

// period validates the query and returns the Month it identifies.
func (q PeriodQuery) period(now time.Time) (types.Month, error) {
	month := q.Month
	if month == 0 {
		month = int(now.Month())
	}

	year := q.Year
	if year == 0 {
		year = now.Year()
	}

	if month < 1 || month > 12 {
		return types.Month{}, errMonthInvalid
	}

	if year < 2000 || year > 2100 {
		return types.Month{}, errYearInvalid
	}

	return types.NewMonth(year, time.Month(month)), nil
}
