package gormrepo

import (
	"gorm.io/gorm"

	"doorhop/internal/app/ports"
)

func NewRepositories(db *gorm.DB) ports.Repositories {
	return ports.Repositories{
		Users:        NewUserRepo(db),
		Doors:        NewDoorRepo(db),
		Visits:       NewVisitRepo(db),
		Decor:        NewDecorRepo(db),
		Inventory:    NewInventoryRepo(db),
		Packages:     NewPackageRepo(db),
		PackageItems: NewPackageItemRepo(db),
		Interactions: NewInteractionRepo(db),
		Credentials:  NewPlayerCredentialRepo(db),
	}
}
