package models

import "time"

// Category groups assets. AssetTagPrefix drives asset tag suggestions;
// an empty prefix disables them for the category.
type Category struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:64;uniqueIndex;not null" json:"name"`
	Description    string    `gorm:"size:255" json:"description"`
	AssetTagPrefix string    `gorm:"size:32" json:"asset_tag_prefix"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
