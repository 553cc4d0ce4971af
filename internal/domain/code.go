package domain

import "fmt"

// NoSubcategory marks a code that has no subcategory component.
const NoSubcategory = "X"

// Code is one entry in the fixed diagnosis-code catalog. The composite
// chapter/category/subcategory triple is the primary key.
type Code struct {
	ChapterCode     string `json:"chapter_code" gorm:"primaryKey;size:1"`
	CategoryCode    string `json:"category_code" gorm:"primaryKey;size:2"`
	SubcategoryCode string `json:"subcategory_code" gorm:"primaryKey;size:1;default:X"`
	Title           string `json:"title" gorm:"size:255;not null"`
	Description     string `json:"description" gorm:"type:text"`
}

// DisplayCode renders the canonical code string, e.g. "A01" or "A01.1".
func (c Code) DisplayCode() string {
	category := c.CategoryCode
	if len(category) == 1 {
		category = "0" + category
	}
	if c.SubcategoryCode == NoSubcategory || c.SubcategoryCode == "" {
		return fmt.Sprintf("%s%s", c.ChapterCode, category)
	}
	return fmt.Sprintf("%s%s.%s", c.ChapterCode, category, c.SubcategoryCode)
}
