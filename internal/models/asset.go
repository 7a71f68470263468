package models

import "time"

// 资产状态
const (
	AssetAvailable   = "AVAILABLE"
	AssetInUse       = "IN_USE"
	AssetMaintenance = "MAINTENANCE"
	AssetRetired     = "RETIRED"
)

// Asset is a tracked physical item. AssetTag is unique across all categories.
type Asset struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	AssetTag     string    `gorm:"size:64;uniqueIndex;not null" json:"asset_tag"`
	Name         string    `gorm:"size:128;not null" json:"name"`
	SerialNumber string    `gorm:"size:128" json:"serial_number"`
	Model        string    `gorm:"size:128" json:"model"`
	Manufacturer string    `gorm:"size:128" json:"manufacturer"`
	Status       string    `gorm:"size:16;index;not null;default:AVAILABLE" json:"status"`
	Notes        string    `gorm:"type:text" json:"notes"`
	CategoryID   uint      `gorm:"index;not null" json:"category_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Category Category `gorm:"constraint:OnDelete:RESTRICT" json:"category"`
}
