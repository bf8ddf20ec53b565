package model

import "time"

const (
	TableNameVisit         = "visits"
	TableNameInteraction   = "interactions"
	TableNameInventoryItem = "inventory_items"
	TableNamePackage       = "packages"
	TableNamePackageItem   = "package_items"
)

type Visit struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement:true" json:"id"`
	VisitorID string    `gorm:"column:visitor_id;not null" json:"visitor_id"`
	DoorID    int64     `gorm:"column:door_id;not null" json:"door_id"`
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()" json:"created_at"`
}

func (*Visit) TableName() string {
	return TableNameVisit
}

type Interaction struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement:true" json:"id"`
	ActorID   string    `gorm:"column:actor_id;not null" json:"actor_id"`
	TargetID  string    `gorm:"column:target_id;not null" json:"target_id"`
	Kind      string    `gorm:"column:kind;not null" json:"kind"`
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()" json:"created_at"`
}

func (*Interaction) TableName() string {
	return TableNameInteraction
}

type InventoryItem struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement:true" json:"id"`
	OwnerID   string    `gorm:"column:owner_id;not null" json:"owner_id"`
	ItemKey   string    `gorm:"column:item_key;not null" json:"item_key"`
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()" json:"created_at"`
}

func (*InventoryItem) TableName() string {
	return TableNameInventoryItem
}

type Package struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement:true" json:"id"`
	DoorID    int64     `gorm:"column:door_id;not null" json:"door_id"`
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()" json:"created_at"`
}

func (*Package) TableName() string {
	return TableNamePackage
}

type PackageItem struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement:true" json:"id"`
	PackageID int64     `gorm:"column:package_id;not null" json:"package_id"`
	ItemKey   string    `gorm:"column:item_key;not null" json:"item_key"`
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()" json:"created_at"`
}

func (*PackageItem) TableName() string {
	return TableNamePackageItem
}
