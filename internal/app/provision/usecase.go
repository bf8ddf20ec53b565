package provision

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"doorhop/internal/app/ports"
	"doorhop/internal/app/shared/delivery"
	"doorhop/internal/app/shared/txrun"
	"doorhop/internal/domain/world"
)

const Op = "on_first_contact"

var ErrInvalidRequest = errors.New("invalid first contact request")

type Request struct {
	UserID world.UserID
}

type Response struct {
	User     world.User           `json:"user"`
	Door     *world.Door          `json:"door,omitempty"`
	Packages []delivery.Delivered `json:"packages,omitempty"`
	Created  bool                 `json:"created"`
}

type UseCase struct {
	Runner txrun.Runner
	Repos  ports.Repositories
	Random ports.RandomSource
	Tuning world.Tuning
	Logger *slog.Logger
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.UserID = world.UserID(strings.TrimSpace(string(req.UserID)))
	if req.UserID == "" {
		return Response{}, ErrInvalidRequest
	}

	var out Response
	err := u.Runner.Run(ctx, Op, func(txCtx context.Context) error {
		res, err := u.Provision(txCtx, u.Random.New(), req.UserID)
		out = res
		return err
	})
	if err != nil {
		return Response{}, err
	}
	return out, nil
}

// Provision creates the user, their first door and its packages unless the user already
// exists, in which case nothing is written. It must run inside a transaction.
func (u UseCase) Provision(ctx context.Context, rng ports.Random, id world.UserID) (Response, error) {
	existing, err := u.Repos.Users.Get(ctx, id)
	if err == nil {
		return Response{User: existing}, nil
	}
	if !errors.Is(err, ports.ErrNotFound) {
		return Response{}, fmt.Errorf("load user: %w", err)
	}

	seed := world.User{ID: id, CurrentDoorNumber: 1}
	if u.Tuning.EnergyEnabled() {
		seed.Energy = u.Tuning.Energy.Initial
	}
	user, err := u.Repos.Users.Insert(ctx, seed)
	if err != nil {
		return Response{}, fmt.Errorf("insert user: %w", err)
	}

	occupant := user.ID
	door, err := u.Repos.Doors.Insert(ctx, world.Door{Owner: user.ID, Occupant: &occupant, Number: 1})
	if err != nil {
		return Response{}, fmt.Errorf("insert door: %w", err)
	}

	packages, err := u.deliveries().SeedDoor(ctx, rng, door.ID)
	if err != nil {
		return Response{}, err
	}

	doorID := door.ID
	user.OriginalDoorID = &doorID
	user.CurrentDoorNumber = 1
	user, err = u.Repos.Users.Update(ctx, user)
	if err != nil {
		return Response{}, fmt.Errorf("update user: %w", err)
	}

	if err := u.Repos.Visits.Append(ctx, world.Visit{Visitor: user.ID, DoorID: door.ID}); err != nil {
		return Response{}, fmt.Errorf("append visit: %w", err)
	}

	u.logger().Info("provisioned user", "user_id", user.ID, "door_id", door.ID)
	return Response{User: user, Door: &door, Packages: packages, Created: true}, nil
}

func (u UseCase) deliveries() delivery.Service {
	return delivery.Service{
		Packages: u.Repos.Packages,
		Items:    u.Repos.PackageItems,
		Tuning:   u.Tuning,
		Logger:   u.Logger,
	}
}

func (u UseCase) logger() *slog.Logger {
	if u.Logger == nil {
		return slog.Default()
	}
	return u.Logger
}
