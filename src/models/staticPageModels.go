package models

// StaticPageTextModel is a block of informational text. Content may hold
// {placeholder} tokens that are filled with census statistics.
type StaticPageTextModel struct {
	ID       int    `json:"id" gorm:"primaryKey;autoIncrement"`
	ViewName string `json:"viewName" gorm:"column:view_name;type:varchar(255);not null;index"`
	Position int    `json:"position" gorm:"column:position;not null;default:0"`
	Content  string `json:"content" gorm:"column:content;type:text;not null"`
}
