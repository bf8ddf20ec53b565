package gormrepo

import (
	"context"

	"gorm.io/gorm"

	"doorhop/internal/adapter/repo/gorm/model"
	"doorhop/internal/domain/world"
)

// VisitRepo and InteractionRepo are insert-only.

type VisitRepo struct {
	db *gorm.DB
}

func NewVisitRepo(db *gorm.DB) VisitRepo {
	return VisitRepo{db: db}
}

func (r VisitRepo) Append(ctx context.Context, visit world.Visit) error {
	m := model.Visit{VisitorID: string(visit.Visitor), DoorID: int64(visit.DoorID)}
	return mapError(getDBFromCtx(ctx, r.db).Create(&m).Error)
}

func (r VisitRepo) ListByVisitor(ctx context.Context, visitor world.UserID) ([]world.Visit, error) {
	var rows []model.Visit
	if err := getDBFromCtx(ctx, r.db).Where("visitor_id = ?", string(visitor)).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, mapError(err)
	}
	out := make([]world.Visit, 0, len(rows))
	for _, m := range rows {
		out = append(out, world.Visit{Visitor: world.UserID(m.VisitorID), DoorID: uint64(m.DoorID)})
	}
	return out, nil
}

type InteractionRepo struct {
	db *gorm.DB
}

func NewInteractionRepo(db *gorm.DB) InteractionRepo {
	return InteractionRepo{db: db}
}

func (r InteractionRepo) Append(ctx context.Context, interaction world.Interaction) (world.Interaction, error) {
	m := model.Interaction{
		ActorID:  string(interaction.Actor),
		TargetID: string(interaction.Target),
		Kind:     string(interaction.Kind),
	}
	if err := getDBFromCtx(ctx, r.db).Create(&m).Error; err != nil {
		return world.Interaction{}, mapError(err)
	}
	interaction.ID = uint64(m.ID)
	return interaction, nil
}

func (r InteractionRepo) CountByTarget(ctx context.Context, target world.UserID) (int, error) {
	var n int64
	if err := getDBFromCtx(ctx, r.db).Model(&model.Interaction{}).Where("target_id = ?", string(target)).Count(&n).Error; err != nil {
		return 0, mapError(err)
	}
	return int(n), nil
}
