package models

import (
	"time"

	"gorm.io/datatypes"
)

// AssetModel is the persistence model for production assets.
type AssetModel struct {
	ID            uint   `gorm:"primarykey"`
	Name          string `gorm:"not null;size:255"`
	Status        string `gorm:"not null;size:32;default:not_started;index:idx_assets_status"`
	RevisionCount int    `gorm:"not null;default:0"`
	Client        string `gorm:"size:128;index:idx_assets_client_batch"`
	Batch         string `gorm:"size:128;index:idx_assets_client_batch"`
	Priority      int    `gorm:"not null;default:0"`
	DeliveryDate  *time.Time
	Version       int `gorm:"not null;default:1"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (AssetModel) TableName() string {
	return TableAssets
}

// StatusHistoryModel is one ledger row. Rows are insert-only.
type StatusHistoryModel struct {
	ID             uint   `gorm:"primarykey"`
	AssetID        uint   `gorm:"not null;index:idx_status_history_asset_created,priority:1"`
	PreviousStatus string `gorm:"not null;size:32"`
	NewStatus      string `gorm:"not null;size:32"`
	ActionType     string `gorm:"not null;size:32"`
	ChangedBy      uint   `gorm:"not null;index"`
	ActorRole      string `gorm:"not null;size:20"`
	RevisionNumber int    `gorm:"not null;default:0"`
	Reason         string `gorm:"size:500"`
	Comments       string `gorm:"type:text"`
	Metadata       datatypes.JSONMap
	CreatedAt      time.Time `gorm:"not null;index:idx_status_history_asset_created,priority:2"`
}

func (StatusHistoryModel) TableName() string {
	return TableStatusHistory
}
