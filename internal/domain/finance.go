package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinanceType is the direction of a finance record
type FinanceType string

const (
	FinanceIncome  FinanceType = "income"
	FinanceExpense FinanceType = "expense"
)

// ParseFinanceType validates a finance type string
func ParseFinanceType(s string) (FinanceType, bool) {
	switch FinanceType(s) {
	case FinanceIncome, FinanceExpense:
		return FinanceType(s), true
	}
	return "", false
}

// FinanceRecord is an entry of the finance ledger
type FinanceRecord struct {
	ID          int64
	Type        FinanceType
	Category    string
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	BookingID   *int64
	CreatedBy   *int64
	CreatedAt   time.Time
}

// FinanceFilter filters finance listings; From and To are inclusive dates
type FinanceFilter struct {
	From *time.Time
	To   *time.Time
	Type *FinanceType
}
