package gormrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"doorhop/internal/adapter/repo/gorm/model"
	"doorhop/internal/app/ports"
	"doorhop/internal/domain/world"
)

type DoorRepo struct {
	db *gorm.DB
}

func NewDoorRepo(db *gorm.DB) DoorRepo {
	return DoorRepo{db: db}
}

func (r DoorRepo) Insert(ctx context.Context, door world.Door) (world.Door, error) {
	door.Version = 1
	m := fromDoor(door)
	m.ID = 0
	if err := getDBFromCtx(ctx, r.db).Create(&m).Error; err != nil {
		return world.Door{}, mapError(err)
	}
	return toDoor(m), nil
}

func (r DoorRepo) Get(ctx context.Context, id uint64) (world.Door, error) {
	var m model.Door
	if err := getDBFromCtx(ctx, r.db).Where("id = ?", int64(id)).First(&m).Error; err != nil {
		return world.Door{}, mapError(err)
	}
	return toDoor(m), nil
}

func (r DoorRepo) ListByOccupant(ctx context.Context, occupant world.UserID) ([]world.Door, error) {
	return r.list(getDBFromCtx(ctx, r.db).Where("occupant_id = ?", string(occupant)))
}

func (r DoorRepo) ListVacant(ctx context.Context) ([]world.Door, error) {
	return r.list(getDBFromCtx(ctx, r.db).Where("occupant_id IS NULL"))
}

func (r DoorRepo) list(q *gorm.DB) ([]world.Door, error) {
	var rows []model.Door
	if err := q.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, mapError(err)
	}
	out := make([]world.Door, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDoor(m))
	}
	return out, nil
}

func (r DoorRepo) Update(ctx context.Context, door world.Door) (world.Door, error) {
	var occupant any
	if door.Occupant != nil {
		occupant = string(*door.Occupant)
	}
	res := getDBFromCtx(ctx, r.db).Model(&model.Door{}).
		Where("id = ? AND version = ?", int64(door.ID), door.Version).
		Updates(map[string]any{
			"owner_id":    string(door.Owner),
			"occupant_id": occupant,
			"number":      int32(door.Number),
			"version":     door.Version + 1,
			"updated_at":  time.Now().UTC(),
		})
	if res.Error != nil {
		return world.Door{}, mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.Get(ctx, door.ID); errors.Is(err, ports.ErrNotFound) {
			return world.Door{}, ports.ErrNotFound
		}
		return world.Door{}, ports.ErrConflict
	}
	door.Version++
	return door, nil
}

func toDoor(m model.Door) world.Door {
	d := world.Door{
		ID:      uint64(m.ID),
		Owner:   world.UserID(m.OwnerID),
		Number:  int(m.Number),
		Version: m.Version,
	}
	if m.OccupantID != nil {
		occupant := world.UserID(*m.OccupantID)
		d.Occupant = &occupant
	}
	return d
}

func fromDoor(d world.Door) model.Door {
	m := model.Door{
		ID:      int64(d.ID),
		OwnerID: string(d.Owner),
		Number:  int32(d.Number),
		Version: d.Version,
	}
	if d.Occupant != nil {
		occupant := string(*d.Occupant)
		m.OccupantID = &occupant
	}
	return m
}
