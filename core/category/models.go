package category

import "fmt"

// Category is one subcategory entry in the two-level notification taxonomy.
// The Category label groups entries; only ID is unique.
type Category struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Category    string `gorm:"index;not null;uniqueIndex:idx_category_subcategory" json:"category"`
	Subcategory string `gorm:"not null;uniqueIndex:idx_category_subcategory" json:"subcategory"`
}

func (Category) TableName() string { return "category" }

func (c Category) String() string {
	return fmt.Sprintf("%s - %s", c.Category, c.Subcategory)
}

// Choice is a (id, subcategory) pair offered as a checkbox on the signup page.
type Choice struct {
	ID          uint   `json:"id"`
	Subcategory string `json:"subcategory"`
}

// SelectAllGroup is the pseudo-group listing every subcategory on the signup page.
const SelectAllGroup = "Select All"

// Grouped maps parent category labels to their subcategory choices,
// including the SelectAllGroup pseudo-group holding all of them.
func Grouped(cats []Category) map[string][]Choice {
	grouped := make(map[string][]Choice)
	for _, cat := range cats {
		choice := Choice{ID: cat.ID, Subcategory: cat.Subcategory}
		grouped[SelectAllGroup] = append(grouped[SelectAllGroup], choice)
		grouped[cat.Category] = append(grouped[cat.Category], choice)
	}
	return grouped
}
