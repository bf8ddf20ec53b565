package gormrepo

import (
	"context"

	"gorm.io/gorm"

	"doorhop/internal/adapter/repo/gorm/model"
	"doorhop/internal/app/ports"
	"doorhop/internal/domain/world"
)

type InventoryRepo struct {
	db *gorm.DB
}

func NewInventoryRepo(db *gorm.DB) InventoryRepo {
	return InventoryRepo{db: db}
}

func (r InventoryRepo) Insert(ctx context.Context, item world.InventoryItem) (world.InventoryItem, error) {
	m := model.InventoryItem{OwnerID: string(item.Owner), ItemKey: item.Key}
	if err := getDBFromCtx(ctx, r.db).Create(&m).Error; err != nil {
		return world.InventoryItem{}, mapError(err)
	}
	return toInventoryItem(m), nil
}

func (r InventoryRepo) Get(ctx context.Context, id uint64) (world.InventoryItem, error) {
	var m model.InventoryItem
	if err := getDBFromCtx(ctx, r.db).Where("id = ?", int64(id)).First(&m).Error; err != nil {
		return world.InventoryItem{}, mapError(err)
	}
	return toInventoryItem(m), nil
}

func (r InventoryRepo) ListByOwner(ctx context.Context, owner world.UserID) ([]world.InventoryItem, error) {
	var rows []model.InventoryItem
	if err := getDBFromCtx(ctx, r.db).Where("owner_id = ?", string(owner)).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, mapError(err)
	}
	out := make([]world.InventoryItem, 0, len(rows))
	for _, m := range rows {
		out = append(out, toInventoryItem(m))
	}
	return out, nil
}

func (r InventoryRepo) Delete(ctx context.Context, id uint64) error {
	return deleteByID(getDBFromCtx(ctx, r.db), &model.InventoryItem{}, id)
}

func toInventoryItem(m model.InventoryItem) world.InventoryItem {
	return world.InventoryItem{ID: uint64(m.ID), Owner: world.UserID(m.OwnerID), Key: m.ItemKey}
}

// deleteByID hard-deletes one row and reports ErrNotFound when nothing matched.
func deleteByID(db *gorm.DB, row any, id uint64) error {
	res := db.Where("id = ?", int64(id)).Delete(row)
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}
