package analytics

import (
	"sort"

	"fintrack/internal/models"
)

// CategoryAggregate is the expense total of one category.
type CategoryAggregate struct {
	CategoryID string  `json:"category_id"`
	Name       string  `json:"name"`
	Color      string  `json:"color"`
	Icon       string  `json:"icon"`
	Total      float64 `json:"total"`
	Count      int     `json:"count"`
	Percentage int     `json:"percentage"`
}

// CategoryBreakdown is the per-category expense view plus its grand total.
type CategoryBreakdown struct {
	Categories    []CategoryAggregate `json:"categories"`
	TotalExpenses float64             `json:"total_expenses"`
}

// Rounded returns a copy with monetary fields rounded to cents.
func (b CategoryBreakdown) Rounded() CategoryBreakdown {
	out := CategoryBreakdown{
		Categories:    make([]CategoryAggregate, len(b.Categories)),
		TotalExpenses: Round2(b.TotalExpenses),
	}
	for i, c := range b.Categories {
		c.Total = Round2(c.Total)
		out.Categories[i] = c
	}
	return out
}

// Total returns the expense total recorded for categoryID, or 0.
func (b CategoryBreakdown) Total(categoryID string) float64 {
	for _, c := range b.Categories {
		if c.CategoryID == categoryID {
			return c.Total
		}
	}
	return 0
}

// ByCategory totals expense transactions per category. Transactions whose
// category is unknown to idx count toward the "other" category. Categories
// without spending are omitted; rows are sorted by total, largest first,
// with ties kept in catalog order.
func ByCategory(txs []models.Transaction, idx *models.CategoryIndex) CategoryBreakdown {
	catalog := idx.All()
	position := make(map[string]int, len(catalog))
	rows := make([]CategoryAggregate, len(catalog))
	for i, c := range catalog {
		position[c.ID] = i
		rows[i] = CategoryAggregate{CategoryID: c.ID, Name: c.Name, Color: c.Color, Icon: c.Icon}
	}

	var totalExpenses float64
	for _, t := range txs {
		if !t.IsExpense() {
			continue
		}
		cat := idx.Resolve(t.CategoryID)
		row := &rows[position[cat.ID]]
		row.Total += t.Amount
		row.Count++
		totalExpenses += t.Amount
	}

	out := make([]CategoryAggregate, 0, len(rows))
	for _, row := range rows {
		if row.Count == 0 || row.Total <= 0 {
			continue
		}
		row.Percentage = Percent(row.Total, totalExpenses)
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total > out[j].Total })

	return CategoryBreakdown{Categories: out, TotalExpenses: totalExpenses}
}
