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

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return UserRepo{db: db}
}

func (r UserRepo) Get(ctx context.Context, id world.UserID) (world.User, error) {
	var m model.User
	if err := getDBFromCtx(ctx, r.db).Where("id = ?", string(id)).First(&m).Error; err != nil {
		return world.User{}, mapError(err)
	}
	return toUser(m), nil
}

func (r UserRepo) Insert(ctx context.Context, user world.User) (world.User, error) {
	user.Version = 1
	m := fromUser(user)
	if err := getDBFromCtx(ctx, r.db).Create(&m).Error; err != nil {
		return world.User{}, mapError(err)
	}
	return toUser(m), nil
}

func (r UserRepo) Update(ctx context.Context, user world.User) (world.User, error) {
	db := getDBFromCtx(ctx, r.db)
	var original any
	if user.OriginalDoorID != nil {
		original = int64(*user.OriginalDoorID)
	}
	res := db.Model(&model.User{}).
		Where("id = ? AND version = ?", string(user.ID), user.Version).
		Updates(map[string]any{
			"original_door_id":    original,
			"current_door_number": int32(user.CurrentDoorNumber),
			"grief_count":         int32(user.GriefCount),
			"energy":              int32(user.Energy),
			"version":             user.Version + 1,
			"updated_at":          time.Now().UTC(),
		})
	if res.Error != nil {
		return world.User{}, mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.Get(ctx, user.ID); errors.Is(err, ports.ErrNotFound) {
			return world.User{}, ports.ErrNotFound
		}
		return world.User{}, ports.ErrConflict
	}
	user.Version++
	return user, nil
}

func toUser(m model.User) world.User {
	u := world.User{
		ID:                world.UserID(m.ID),
		CurrentDoorNumber: int(m.CurrentDoorNumber),
		GriefCount:        int(m.GriefCount),
		Energy:            int(m.Energy),
		Version:           m.Version,
	}
	if m.OriginalDoorID != nil {
		id := uint64(*m.OriginalDoorID)
		u.OriginalDoorID = &id
	}
	return u
}

func fromUser(u world.User) model.User {
	m := model.User{
		ID:                string(u.ID),
		CurrentDoorNumber: int32(u.CurrentDoorNumber),
		GriefCount:        int32(u.GriefCount),
		Energy:            int32(u.Energy),
		Version:           u.Version,
	}
	if u.OriginalDoorID != nil {
		id := int64(*u.OriginalDoorID)
		m.OriginalDoorID = &id
	}
	return m
}
