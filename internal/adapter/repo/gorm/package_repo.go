package gormrepo

import (
	"context"

	"gorm.io/gorm"

	"doorhop/internal/adapter/repo/gorm/model"
	"doorhop/internal/domain/world"
)

type PackageRepo struct {
	db *gorm.DB
}

func NewPackageRepo(db *gorm.DB) PackageRepo {
	return PackageRepo{db: db}
}

func (r PackageRepo) Insert(ctx context.Context, pkg world.Package) (world.Package, error) {
	m := model.Package{DoorID: int64(pkg.DoorID)}
	if err := getDBFromCtx(ctx, r.db).Create(&m).Error; err != nil {
		return world.Package{}, mapError(err)
	}
	return world.Package{ID: uint64(m.ID), DoorID: uint64(m.DoorID)}, nil
}

func (r PackageRepo) Get(ctx context.Context, id uint64) (world.Package, error) {
	var m model.Package
	if err := getDBFromCtx(ctx, r.db).Where("id = ?", int64(id)).First(&m).Error; err != nil {
		return world.Package{}, mapError(err)
	}
	return world.Package{ID: uint64(m.ID), DoorID: uint64(m.DoorID)}, nil
}

func (r PackageRepo) ListByDoor(ctx context.Context, doorID uint64) ([]world.Package, error) {
	var rows []model.Package
	if err := getDBFromCtx(ctx, r.db).Where("door_id = ?", int64(doorID)).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, mapError(err)
	}
	out := make([]world.Package, 0, len(rows))
	for _, m := range rows {
		out = append(out, world.Package{ID: uint64(m.ID), DoorID: uint64(m.DoorID)})
	}
	return out, nil
}

func (r PackageRepo) Delete(ctx context.Context, id uint64) error {
	return deleteByID(getDBFromCtx(ctx, r.db), &model.Package{}, id)
}

type PackageItemRepo struct {
	db *gorm.DB
}

func NewPackageItemRepo(db *gorm.DB) PackageItemRepo {
	return PackageItemRepo{db: db}
}

func (r PackageItemRepo) Insert(ctx context.Context, item world.PackageItem) (world.PackageItem, error) {
	m := model.PackageItem{PackageID: int64(item.PackageID), ItemKey: item.Key}
	if err := getDBFromCtx(ctx, r.db).Create(&m).Error; err != nil {
		return world.PackageItem{}, mapError(err)
	}
	return world.PackageItem{ID: uint64(m.ID), PackageID: uint64(m.PackageID), Key: m.ItemKey}, nil
}

func (r PackageItemRepo) ListByPackage(ctx context.Context, packageID uint64) ([]world.PackageItem, error) {
	var rows []model.PackageItem
	if err := getDBFromCtx(ctx, r.db).Where("package_id = ?", int64(packageID)).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, mapError(err)
	}
	out := make([]world.PackageItem, 0, len(rows))
	for _, m := range rows {
		out = append(out, world.PackageItem{ID: uint64(m.ID), PackageID: uint64(m.PackageID), Key: m.ItemKey})
	}
	return out, nil
}

func (r PackageItemRepo) Delete(ctx context.Context, id uint64) error {
	return deleteByID(getDBFromCtx(ctx, r.db), &model.PackageItem{}, id)
}
