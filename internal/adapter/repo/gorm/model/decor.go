package model

import (
	"time"

	"gorm.io/gorm"
)

const TableNameDecor = "decor"

type Decor struct {
	ID             int64          `gorm:"column:id;primaryKey;autoIncrement:true" json:"id"`
	DoorID         int64          `gorm:"column:door_id;not null" json:"door_id"`
	OwnerID        string         `gorm:"column:owner_id;not null" json:"owner_id"`
	Text           *string        `gorm:"column:text" json:"text"`
	X              int64          `gorm:"column:x;not null" json:"x"`
	Y              int64          `gorm:"column:y;not null" json:"y"`
	Rot            int64          `gorm:"column:rot;not null" json:"rot"`
	ItemKey        string         `gorm:"column:item_key;not null" json:"item_key"`
	LastModifierID string         `gorm:"column:last_modifier_id;not null" json:"last_modifier_id"`
	CreatedAt      time.Time      `gorm:"column:created_at;not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;not null;default:now()" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at" json:"deleted_at"`
}

func (*Decor) TableName() string {
	return TableNameDecor
}
