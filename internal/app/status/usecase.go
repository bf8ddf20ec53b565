package status

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"doorhop/internal/app/ports"
	"doorhop/internal/app/shared/delivery"
	"doorhop/internal/app/shared/txrun"
	"doorhop/internal/domain/world"
)

const Op = "status"

var ErrInvalidRequest = errors.New("invalid status request")

type UseCase struct {
	Runner txrun.Runner
	Repos  ports.Repositories
	Tuning world.Tuning
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(string(req.UserID)) == "" {
		return Response{}, ErrInvalidRequest
	}

	var out Response
	err := u.Runner.Run(ctx, Op, func(txCtx context.Context) error {
		res, err := u.read(txCtx, req.UserID)
		out = res
		return err
	})
	if err != nil {
		return Response{}, err
	}
	return out, nil
}

func (u UseCase) read(ctx context.Context, id world.UserID) (Response, error) {
	user, err := u.Repos.Users.Get(ctx, id)
	if err != nil {
		return Response{}, ports.NotFoundAs(err, "user does not exist")
	}
	res := Response{
		User:      user,
		Decor:     []world.Decor{},
		Packages:  []delivery.Delivered{},
		Inventory: []world.InventoryItem{},
		Economy:   u.Tuning.Economy,
	}

	inv, err := u.Repos.Inventory.ListByOwner(ctx, id)
	if err != nil {
		return Response{}, fmt.Errorf("list inventory: %w", err)
	}
	res.Inventory = append(res.Inventory, inv...)

	res.LikesReceived, err = u.Repos.Interactions.CountByTarget(ctx, id)
	if err != nil {
		return Response{}, fmt.Errorf("count likes: %w", err)
	}

	doors, err := u.Repos.Doors.ListByOccupant(ctx, id)
	if err != nil {
		return Response{}, fmt.Errorf("list occupied doors: %w", err)
	}
	if len(doors) == 0 {
		return res, nil
	}
	door := doors[0]
	res.Door = &door

	decor, err := u.Repos.Decor.ListByDoor(ctx, door.ID)
	if err != nil {
		return Response{}, fmt.Errorf("list decor: %w", err)
	}
	res.Decor = append(res.Decor, decor...)

	pkgs, err := u.Repos.Packages.ListByDoor(ctx, door.ID)
	if err != nil {
		return Response{}, fmt.Errorf("list packages: %w", err)
	}
	for _, p := range pkgs {
		items, err := u.Repos.PackageItems.ListByPackage(ctx, p.ID)
		if err != nil {
			return Response{}, fmt.Errorf("list package items: %w", err)
		}
		res.Packages = append(res.Packages, delivery.Delivered{Package: p, Items: items})
	}
	return res, nil
}
