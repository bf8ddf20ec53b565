package memory

import (
	"context"

	"doorhop/internal/app/ports"
	"doorhop/internal/domain/world"
)

type PackageRepo struct {
	store *Store
}

func NewPackageRepo(store *Store) PackageRepo {
	return PackageRepo{store: store}
}

func (r PackageRepo) Insert(ctx context.Context, pkg world.Package) (world.Package, error) {
	err := r.store.with(ctx, func(t *tables) error {
		pkg.ID = t.nextID("packages")
		t.packages[pkg.ID] = pkg
		return nil
	})
	return pkg, err
}

func (r PackageRepo) Get(ctx context.Context, id uint64) (world.Package, error) {
	var out world.Package
	err := r.store.with(ctx, func(t *tables) error {
		p, ok := t.packages[id]
		if !ok {
			return ports.ErrNotFound
		}
		out = p
		return nil
	})
	return out, err
}

func (r PackageRepo) ListByDoor(ctx context.Context, doorID uint64) ([]world.Package, error) {
	var out []world.Package
	err := r.store.with(ctx, func(t *tables) error {
		for _, p := range t.packages {
			if p.DoorID == doorID {
				out = append(out, p)
			}
		}
		return nil
	})
	return sortedByID(out, func(p world.Package) uint64 { return p.ID }), err
}

func (r PackageRepo) Delete(ctx context.Context, id uint64) error {
	return r.store.with(ctx, func(t *tables) error {
		if _, ok := t.packages[id]; !ok {
			return ports.ErrNotFound
		}
		delete(t.packages, id)
		return nil
	})
}

type PackageItemRepo struct {
	store *Store
}

func NewPackageItemRepo(store *Store) PackageItemRepo {
	return PackageItemRepo{store: store}
}

func (r PackageItemRepo) Insert(ctx context.Context, item world.PackageItem) (world.PackageItem, error) {
	err := r.store.with(ctx, func(t *tables) error {
		item.ID = t.nextID("package_items")
		t.packageItems[item.ID] = item
		return nil
	})
	return item, err
}

func (r PackageItemRepo) ListByPackage(ctx context.Context, packageID uint64) ([]world.PackageItem, error) {
	var out []world.PackageItem
	err := r.store.with(ctx, func(t *tables) error {
		for _, item := range t.packageItems {
			if item.PackageID == packageID {
				out = append(out, item)
			}
		}
		return nil
	})
	return sortedByID(out, func(i world.PackageItem) uint64 { return i.ID }), err
}

func (r PackageItemRepo) Delete(ctx context.Context, id uint64) error {
	return r.store.with(ctx, func(t *tables) error {
		if _, ok := t.packageItems[id]; !ok {
			return ports.ErrNotFound
		}
		delete(t.packageItems, id)
		return nil
	})
}
