package models

// OtherCategoryID is the category that absorbs transactions whose category
// is not part of the known set.
const OtherCategoryID = "other"

// Category is a fixed classification tag. The set is small, seeded once and
// read-only in practice.
type Category struct {
	ID       string `gorm:"primaryKey;size:64" bson:"_id" json:"id"`
	Name     string `gorm:"not null" bson:"name" json:"name"`
	Color    string `gorm:"size:9" bson:"color" json:"color"`
	Icon     string `bson:"icon" json:"icon"`
	Position int    `gorm:"not null;default:0" bson:"position" json:"-"`
}

// DefaultCategories is the catalog seeded into every store.
func DefaultCategories() []Category {
	return []Category{
		{ID: "food", Name: "Food & Dining", Icon: "🍽️", Color: "#ef4444", Position: 0},
		{ID: "transportation", Name: "Transportation", Icon: "🚗", Color: "#3b82f6", Position: 1},
		{ID: "shopping", Name: "Shopping", Icon: "🛒", Color: "#8b5cf6", Position: 2},
		{ID: "entertainment", Name: "Entertainment", Icon: "🎬", Color: "#f59e0b", Position: 3},
		{ID: "bills", Name: "Bills & Utilities", Icon: "💡", Color: "#10b981", Position: 4},
		{ID: "healthcare", Name: "Healthcare", Icon: "🏥", Color: "#ec4899", Position: 5},
		{ID: "education", Name: "Education", Icon: "📚", Color: "#6366f1", Position: 6},
		{ID: OtherCategoryID, Name: "Other", Icon: "📦", Color: "#6b7280", Position: 7},
	}
}

// CategoryIndex resolves category ids against a known set, in catalog order.
type CategoryIndex struct {
	ordered []Category
	byID    map[string]int
	other   Category
}

// NewCategoryIndex builds an index over cats. When the set has no "other"
// entry a default one is used as the fallback.
func NewCategoryIndex(cats []Category) *CategoryIndex {
	idx := &CategoryIndex{
		ordered: make([]Category, 0, len(cats)),
		byID:    make(map[string]int, len(cats)),
	}
	for _, c := range cats {
		if _, dup := idx.byID[c.ID]; dup {
			continue
		}
		idx.byID[c.ID] = len(idx.ordered)
		idx.ordered = append(idx.ordered, c)
	}
	if pos, ok := idx.byID[OtherCategoryID]; ok {
		idx.other = idx.ordered[pos]
	} else {
		idx.other = Category{ID: OtherCategoryID, Name: "Other", Icon: "📦", Color: "#6b7280"}
	}
	return idx
}

// Lookup returns the category with the given id.
func (idx *CategoryIndex) Lookup(id string) (Category, bool) {
	pos, ok := idx.byID[id]
	if !ok {
		return Category{}, false
	}
	return idx.ordered[pos], true
}

// Resolve returns the category with the given id, or the "other" category.
func (idx *CategoryIndex) Resolve(id string) Category {
	if c, ok := idx.Lookup(id); ok {
		return c
	}
	return idx.other
}

// Has reports whether id is part of the known set.
func (idx *CategoryIndex) Has(id string) bool {
	_, ok := idx.byID[id]
	return ok
}

// All returns the categories in catalog order. When the fallback "other"
// category is synthetic it is appended last.
func (idx *CategoryIndex) All() []Category {
	out := make([]Category, len(idx.ordered), len(idx.ordered)+1)
	copy(out, idx.ordered)
	if !idx.Has(OtherCategoryID) {
		out = append(out, idx.other)
	}
	return out
}
