package matchmaking

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

const Op = "enter_door"

var ErrInvalidRequest = errors.New("invalid enter door request")

type Request struct {
	UserID world.UserID
}

type Response struct {
	Door       world.Door           `json:"door"`
	Created    bool                 `json:"created"`
	Seeded     []delivery.Delivered `json:"seeded,omitempty"`
	DoorNumber int                  `json:"door_number"`
	Energy     int                  `json:"energy"`
	Reward     int                  `json:"reward,omitempty"`
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
		res, err := u.enter(txCtx, u.Random.New(), req.UserID)
		out = res
		return err
	})
	if err != nil {
		return Response{}, err
	}
	return out, nil
}

func (u UseCase) enter(ctx context.Context, rng ports.Random, id world.UserID) (Response, error) {
	user, err := u.Repos.Users.Get(ctx, id)
	if err != nil {
		return Response{}, ports.NotFoundAs(err, "user does not exist")
	}

	if err := u.release(ctx, id); err != nil {
		return Response{}, err
	}

	visits, err := u.Repos.Visits.ListByVisitor(ctx, id)
	if err != nil {
		return Response{}, fmt.Errorf("list visits: %w", err)
	}
	visited := world.VisitedDoors(visits)
	number := len(visited) + 1

	vacant, err := u.Repos.Doors.ListVacant(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("list vacant doors: %w", err)
	}
	candidates := Eligible(vacant, id, visited)

	var res Response
	occupant := id
	if len(candidates) > 0 {
		door := candidates[rng.IntN(len(candidates))]
		door.Occupant = &occupant
		door, err = u.Repos.Doors.Update(ctx, door)
		if err != nil {
			return Response{}, fmt.Errorf("claim door: %w", err)
		}
		pkgs, err := u.Repos.Packages.ListByDoor(ctx, door.ID)
		if err != nil {
			return Response{}, fmt.Errorf("list packages: %w", err)
		}
		if len(pkgs) == 0 {
			res.Seeded, err = u.deliveries().SeedDoor(ctx, rng, door.ID)
			if err != nil {
				return Response{}, err
			}
		}
		res.Door = door
		u.logger().Info("user entered door", "user_id", id, "door_id", door.ID, "owner", door.Owner)
	} else {
		door, err := u.Repos.Doors.Insert(ctx, world.Door{Owner: id, Occupant: &occupant, Number: number})
		if err != nil {
			return Response{}, fmt.Errorf("insert door: %w", err)
		}
		res.Seeded, err = u.deliveries().SeedDoor(ctx, rng, door.ID)
		if err != nil {
			return Response{}, err
		}
		res.Door = door
		res.Created = true
		u.logger().Info("no eligible door, created one", "user_id", id, "door_id", door.ID)
	}

	if err := u.Repos.Visits.Append(ctx, world.Visit{Visitor: id, DoorID: res.Door.ID}); err != nil {
		return Response{}, fmt.Errorf("append visit: %w", err)
	}

	user.CurrentDoorNumber = number
	if u.Tuning.EnergyEnabled() {
		res.Reward = u.Tuning.Energy.VisitReward(len(visited))
		user.Credit(u.Tuning.Energy, res.Reward)
	}
	user, err = u.Repos.Users.Update(ctx, user)
	if err != nil {
		return Response{}, fmt.Errorf("update user: %w", err)
	}

	res.DoorNumber = user.CurrentDoorNumber
	res.Energy = user.Energy
	return res, nil
}

func (u UseCase) release(ctx context.Context, id world.UserID) error {
	occupied, err := u.Repos.Doors.ListByOccupant(ctx, id)
	if err != nil {
		return fmt.Errorf("list occupied doors: %w", err)
	}
	for _, door := range occupied {
		door.Occupant = nil
		if _, err := u.Repos.Doors.Update(ctx, door); err != nil {
			return fmt.Errorf("release door %d: %w", door.ID, err)
		}
	}
	return nil
}

// Eligible keeps the vacant doors the visitor neither owns nor has been through before.
// The result keeps the input order.
func Eligible(vacant []world.Door, visitor world.UserID, visited map[uint64]struct{}) []world.Door {
	out := make([]world.Door, 0, len(vacant))
	for _, d := range vacant {
		if !d.Vacant() || d.Owner == visitor {
			continue
		}
		if _, seen := visited[d.ID]; seen {
			continue
		}
		out = append(out, d)
	}
	return out
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
