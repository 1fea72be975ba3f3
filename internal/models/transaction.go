package models

import "time"

// TransactionType represents the direction of a cash flow.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// DateLayout is the calendar date format used for Transaction.Date.
const DateLayout = "2006-01-02"

// MonthLayout is the year-month key format used for budgets and aggregates.
const MonthLayout = "2006-01"

// Transaction is a single dated income or expense record. Amount is always
// positive; the direction is carried by Type.
type Transaction struct {
	Base        `bson:",inline"`
	Amount      float64         `gorm:"not null" bson:"amount" json:"amount"`
	Date        string          `gorm:"size:10;not null;index" bson:"date" json:"date"`
	Description string          `gorm:"not null" bson:"description" json:"description"`
	CategoryID  string          `gorm:"column:category_id;size:64;not null;index" bson:"category_id" json:"category"`
	Type        TransactionType `gorm:"size:16;not null" bson:"type" json:"type"`
}

// Month returns the YYYY-MM key of the transaction date. ok is false when
// the stored date is not a valid calendar date.
func (t Transaction) Month() (month string, ok bool) {
	d, err := time.Parse(DateLayout, t.Date)
	if err != nil {
		return "", false
	}
	return d.Format(MonthLayout), true
}

// IsExpense reports whether the transaction is an expense.
func (t Transaction) IsExpense() bool { return t.Type == TransactionTypeExpense }
