package model

import "time"

const TableNameDoor = "doors"

type Door struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement:true" json:"id"`
	OwnerID    string    `gorm:"column:owner_id;not null" json:"owner_id"`
	OccupantID *string   `gorm:"column:occupant_id" json:"occupant_id"`
	Number     int32     `gorm:"column:number;not null" json:"number"`
	Version    int64     `gorm:"column:version;not null;default:1" json:"version"`
	CreatedAt  time.Time `gorm:"column:created_at;not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;not null;default:now()" json:"updated_at"`
}

func (*Door) TableName() string {
	return TableNameDoor
}
