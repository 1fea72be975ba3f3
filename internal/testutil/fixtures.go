package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"fintrack/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestTransaction creates a food transaction dated 2024-01-15.
func CreateTestTransaction(t *testing.T, db *gorm.DB, transactionType models.TransactionType, amount float64) *models.Transaction {
	t.Helper()
	return CreateTestTransactionOn(t, db, transactionType, amount, "food", "2024-01-15")
}

// CreateTestTransactionOn creates a transaction with the given category and date.
func CreateTestTransactionOn(t *testing.T, db *gorm.DB, transactionType models.TransactionType, amount float64, categoryID, date string) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		Amount:      amount,
		Date:        date,
		Description: fmt.Sprintf("Test transaction %d", nextID()),
		CategoryID:  categoryID,
		Type:        transactionType,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestBudget creates a budget for (categoryID, month).
func CreateTestBudget(t *testing.T, db *gorm.DB, categoryID, month string, amount float64) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		CategoryID: categoryID,
		Month:      month,
		Amount:     amount,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}
