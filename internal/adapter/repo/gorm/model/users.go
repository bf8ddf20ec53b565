package model

import "time"

const TableNameUser = "users"

type User struct {
	ID                string    `gorm:"column:id;primaryKey" json:"id"`
	OriginalDoorID    *int64    `gorm:"column:original_door_id" json:"original_door_id"`
	CurrentDoorNumber int32     `gorm:"column:current_door_number;not null;default:1" json:"current_door_number"`
	GriefCount        int32     `gorm:"column:grief_count;not null" json:"grief_count"`
	Energy            int32     `gorm:"column:energy;not null" json:"energy"`
	Version           int64     `gorm:"column:version;not null;default:1" json:"version"`
	CreatedAt         time.Time `gorm:"column:created_at;not null;default:now()" json:"created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at;not null;default:now()" json:"updated_at"`
}

func (*User) TableName() string {
	return TableNameUser
}
