package models

// Budget is a per-category spending ceiling for one month. At most one
// budget exists per (CategoryID, Month).
type Budget struct {
	Base       `bson:",inline"`
	CategoryID string  `gorm:"column:category_id;size:64;not null;uniqueIndex:idx_budgets_category_month" bson:"category_id" json:"category"`
	Month      string  `gorm:"size:7;not null;uniqueIndex:idx_budgets_category_month" bson:"month" json:"month"`
	Amount     float64 `gorm:"not null" bson:"amount" json:"amount"`
}
