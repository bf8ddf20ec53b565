package ports

import (
	"context"
	"time"

	"doorhop/internal/domain/world"
)

// Update methods on versioned rows treat the passed Version as the expected current value,
// fail with ErrConflict when it no longer matches, and return the row with its new version.

type UserRepository interface {
	Get(ctx context.Context, id world.UserID) (world.User, error)
	Insert(ctx context.Context, user world.User) (world.User, error)
	Update(ctx context.Context, user world.User) (world.User, error)
}

type DoorRepository interface {
	Insert(ctx context.Context, door world.Door) (world.Door, error)
	Get(ctx context.Context, id uint64) (world.Door, error)
	ListByOccupant(ctx context.Context, occupant world.UserID) ([]world.Door, error)
	ListVacant(ctx context.Context) ([]world.Door, error)
	Update(ctx context.Context, door world.Door) (world.Door, error)
}

type VisitRepository interface {
	Append(ctx context.Context, visit world.Visit) error
	ListByVisitor(ctx context.Context, visitor world.UserID) ([]world.Visit, error)
}

type DecorRepository interface {
	Insert(ctx context.Context, decor world.Decor) (world.Decor, error)
	Get(ctx context.Context, id uint64) (world.Decor, error)
	ListByDoor(ctx context.Context, doorID uint64) ([]world.Decor, error)
	Update(ctx context.Context, decor world.Decor) error
	// Delete soft-deletes; deleted rows are invisible to Get and ListByDoor.
	Delete(ctx context.Context, id uint64, at time.Time) error
}

type InventoryRepository interface {
	Insert(ctx context.Context, item world.InventoryItem) (world.InventoryItem, error)
	Get(ctx context.Context, id uint64) (world.InventoryItem, error)
	ListByOwner(ctx context.Context, owner world.UserID) ([]world.InventoryItem, error)
	Delete(ctx context.Context, id uint64) error
}

type PackageRepository interface {
	Insert(ctx context.Context, pkg world.Package) (world.Package, error)
	Get(ctx context.Context, id uint64) (world.Package, error)
	ListByDoor(ctx context.Context, doorID uint64) ([]world.Package, error)
	Delete(ctx context.Context, id uint64) error
}

type PackageItemRepository interface {
	Insert(ctx context.Context, item world.PackageItem) (world.PackageItem, error)
	ListByPackage(ctx context.Context, packageID uint64) ([]world.PackageItem, error)
	Delete(ctx context.Context, id uint64) error
}

type InteractionRepository interface {
	Append(ctx context.Context, interaction world.Interaction) (world.Interaction, error)
	CountByTarget(ctx context.Context, target world.UserID) (int, error)
}

type PlayerCredentialRecord struct {
	PlayerID  world.UserID
	KeySalt   []byte
	KeyHash   []byte
	Status    string
	CreatedAt time.Time
}

type PlayerCredentialRepository interface {
	Create(ctx context.Context, credential PlayerCredentialRecord) error
	GetByPlayerID(ctx context.Context, playerID world.UserID) (PlayerCredentialRecord, error)
}

// Repositories bundles every entity store a handler may touch inside one transaction.
type Repositories struct {
	Users        UserRepository
	Doors        DoorRepository
	Visits       VisitRepository
	Decor        DecorRepository
	Inventory    InventoryRepository
	Packages     PackageRepository
	PackageItems PackageItemRepository
	Interactions InteractionRepository
	Credentials  PlayerCredentialRepository
}
