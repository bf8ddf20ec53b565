package gormrepo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"doorhop/internal/adapter/repo/gorm/model"
	"doorhop/internal/app/ports"
	"doorhop/internal/domain/world"
)

// DecorRepo soft-deletes through gorm.DeletedAt, so default scopes already hide removed rows.
type DecorRepo struct {
	db *gorm.DB
}

func NewDecorRepo(db *gorm.DB) DecorRepo {
	return DecorRepo{db: db}
}

func (r DecorRepo) Insert(ctx context.Context, decor world.Decor) (world.Decor, error) {
	m := fromDecor(decor)
	m.ID = 0
	if err := getDBFromCtx(ctx, r.db).Create(&m).Error; err != nil {
		return world.Decor{}, mapError(err)
	}
	return toDecor(m), nil
}

func (r DecorRepo) Get(ctx context.Context, id uint64) (world.Decor, error) {
	var m model.Decor
	if err := getDBFromCtx(ctx, r.db).Where("id = ?", int64(id)).First(&m).Error; err != nil {
		return world.Decor{}, mapError(err)
	}
	return toDecor(m), nil
}

func (r DecorRepo) ListByDoor(ctx context.Context, doorID uint64) ([]world.Decor, error) {
	var rows []model.Decor
	if err := getDBFromCtx(ctx, r.db).Where("door_id = ?", int64(doorID)).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, mapError(err)
	}
	out := make([]world.Decor, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDecor(m))
	}
	return out, nil
}

func (r DecorRepo) Update(ctx context.Context, decor world.Decor) error {
	var text any
	if decor.Text != nil {
		text = *decor.Text
	}
	res := getDBFromCtx(ctx, r.db).Model(&model.Decor{}).
		Where("id = ?", int64(decor.ID)).
		Updates(map[string]any{
			"text":             text,
			"x":                int64(decor.Position.X),
			"y":                int64(decor.Position.Y),
			"rot":              int64(decor.Position.Rot),
			"last_modifier_id": string(decor.LastModifier),
			"updated_at":       time.Now().UTC(),
		})
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r DecorRepo) Delete(ctx context.Context, id uint64, at time.Time) error {
	res := getDBFromCtx(ctx, r.db).Model(&model.Decor{}).
		Where("id = ?", int64(id)).
		Update("deleted_at", at.UTC())
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func toDecor(m model.Decor) world.Decor {
	d := world.Decor{
		ID:           uint64(m.ID),
		DoorID:       uint64(m.DoorID),
		Owner:        world.UserID(m.OwnerID),
		Text:         m.Text,
		Position:     world.Position{X: uint32(m.X), Y: uint32(m.Y), Rot: uint32(m.Rot)},
		Key:          m.ItemKey,
		LastModifier: world.UserID(m.LastModifierID),
	}
	if m.DeletedAt.Valid {
		at := m.DeletedAt.Time
		d.DeletedAt = &at
	}
	return d
}

func fromDecor(d world.Decor) model.Decor {
	m := model.Decor{
		ID:             int64(d.ID),
		DoorID:         int64(d.DoorID),
		OwnerID:        string(d.Owner),
		Text:           d.Text,
		X:              int64(d.Position.X),
		Y:              int64(d.Position.Y),
		Rot:            int64(d.Position.Rot),
		ItemKey:        d.Key,
		LastModifierID: string(d.LastModifier),
	}
	if d.DeletedAt != nil {
		m.DeletedAt = gorm.DeletedAt{Time: *d.DeletedAt, Valid: true}
	}
	return m
}
