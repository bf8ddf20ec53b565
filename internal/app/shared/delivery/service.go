package delivery

import (
	"context"
	"fmt"
	"log/slog"

	"doorhop/internal/app/ports"
	"doorhop/internal/domain/world"
)

type Delivered struct {
	Package world.Package       `json:"package"`
	Items   []world.PackageItem `json:"items"`
}

// Service turns catalog draws into packages left at a door.
type Service struct {
	Packages ports.PackageRepository
	Items    ports.PackageItemRepository
	Tuning   world.Tuning
	Logger   *slog.Logger
}

// SeedDoor leaves SeedPackages.Min..Max fresh packages at the door.
func (s Service) SeedDoor(ctx context.Context, rng ports.Random, doorID uint64) ([]Delivered, error) {
	n := s.Tuning.SeedPackages.Pick(rng)
	s.logger().Info("building packages for door", "door_id", doorID, "count", n)

	out := make([]Delivered, 0, n)
	for i := 0; i < n; i++ {
		d, err := s.Deliver(ctx, rng, doorID)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Deliver creates one package of PackageItems.Min..Max uniform catalog draws.
func (s Service) Deliver(ctx context.Context, rng ports.Random, doorID uint64) (Delivered, error) {
	pkg, err := s.Packages.Insert(ctx, world.Package{DoorID: doorID})
	if err != nil {
		return Delivered{}, fmt.Errorf("insert package: %w", err)
	}

	n := s.Tuning.PackageItems.Pick(rng)
	s.logger().Debug("building package items", "package_id", pkg.ID, "count", n)

	items := make([]world.PackageItem, 0, n)
	for i := 0; i < n; i++ {
		key, err := s.Tuning.Catalog.Draw(rng)
		if err != nil {
			return Delivered{}, fmt.Errorf("%w: %w", ports.ErrInternal, err)
		}
		item, err := s.Items.Insert(ctx, world.PackageItem{PackageID: pkg.ID, Key: key})
		if err != nil {
			return Delivered{}, fmt.Errorf("insert package item: %w", err)
		}
		items = append(items, item)
	}
	return Delivered{Package: pkg, Items: items}, nil
}

func (s Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}
