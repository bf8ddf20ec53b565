package decor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"doorhop/internal/app/ports"
	"doorhop/internal/app/shared/delivery"
	"doorhop/internal/app/shared/txrun"
	"doorhop/internal/domain/world"
)

const (
	OpCreate = "create_decor"
	OpMove   = "move_decor"
	OpDelete = "delete_decor"
	OpText   = "update_decor_text"
)

var ErrInvalidRequest = errors.New("invalid decor request")

type CreateRequest struct {
	UserID      world.UserID
	InventoryID uint64
	X           uint32
	Y           uint32
}

type MoveRequest struct {
	UserID  world.UserID
	DecorID uint64
	X       uint32
	Y       uint32
	Rot     uint32
}

type DeleteRequest struct {
	UserID  world.UserID
	DecorID uint64
}

type TextRequest struct {
	UserID  world.UserID
	DecorID uint64
	Text    string
}

type Response struct {
	Decor  world.Decor `json:"decor"`
	Energy *int        `json:"energy,omitempty"`
}

type DeleteResponse struct {
	DecorID  uint64               `json:"decor_id"`
	Returned *world.InventoryItem `json:"returned,omitempty"`
	Reward   *delivery.Delivered  `json:"reward,omitempty"`
	Energy   *int                 `json:"energy,omitempty"`
}

type UseCase struct {
	Runner txrun.Runner
	Repos  ports.Repositories
	Random ports.RandomSource
	Tuning world.Tuning
	Logger *slog.Logger
	Now    func() time.Time
}

func (u UseCase) Create(ctx context.Context, req CreateRequest) (Response, error) {
	if err := checkCaller(req.UserID); err != nil {
		return Response{}, err
	}
	var out Response
	err := u.Runner.Run(ctx, OpCreate, func(txCtx context.Context) error {
		res, err := u.create(txCtx, req)
		out = res
		return err
	})
	if err != nil {
		return Response{}, err
	}
	return out, nil
}

func (u UseCase) create(ctx context.Context, req CreateRequest) (Response, error) {
	user, err := u.Repos.Users.Get(ctx, req.UserID)
	if err != nil {
		return Response{}, ports.NotFoundAs(err, "user does not exist")
	}
	item, err := u.Repos.Inventory.Get(ctx, req.InventoryID)
	if err != nil {
		return Response{}, ports.NotFoundAs(err, "inventory item not found")
	}
	if item.Owner != user.ID {
		return Response{}, ports.Fail(ports.ErrNotFound, "inventory item not found")
	}
	doors, err := u.Repos.Doors.ListByOccupant(ctx, user.ID)
	if err != nil {
		return Response{}, fmt.Errorf("list occupied doors: %w", err)
	}
	if len(doors) == 0 {
		return Response{}, ports.Fail(ports.ErrInvalidState, "cannot place decor while not visiting a door")
	}

	var res Response
	if u.Tuning.EnergyEnabled() {
		if !user.Debit(u.Tuning.Energy, u.Tuning.Energy.CreateCost) {
			return Response{}, ports.Fail(ports.ErrInsufficientResource, "not enough energy")
		}
		user, err = u.Repos.Users.Update(ctx, user)
		if err != nil {
			return Response{}, fmt.Errorf("update user: %w", err)
		}
		energy := user.Energy
		res.Energy = &energy
	}

	if err := u.Repos.Inventory.Delete(ctx, item.ID); err != nil {
		return Response{}, fmt.Errorf("consume inventory item: %w", err)
	}
	placed, err := u.Repos.Decor.Insert(ctx, world.Decor{
		DoorID:       doors[0].ID,
		Owner:        user.ID,
		Position:     world.Position{X: req.X, Y: req.Y},
		Key:          item.Key,
		LastModifier: user.ID,
	})
	if err != nil {
		return Response{}, fmt.Errorf("insert decor: %w", err)
	}
	res.Decor = placed
	return res, nil
}

func (u UseCase) Move(ctx context.Context, req MoveRequest) (Response, error) {
	if err := checkCaller(req.UserID); err != nil {
		return Response{}, err
	}
	return u.modify(ctx, OpMove, req.UserID, req.DecorID, func(d *world.Decor) {
		d.Position = world.Position{X: req.X, Y: req.Y, Rot: req.Rot}
	})
}

func (u UseCase) UpdateText(ctx context.Context, req TextRequest) (Response, error) {
	if err := checkCaller(req.UserID); err != nil {
		return Response{}, err
	}
	return u.modify(ctx, OpText, req.UserID, req.DecorID, func(d *world.Decor) {
		text := req.Text
		d.Text = &text
	})
}

// modify applies change for any existing caller; edits are not restricted to the owner.
func (u UseCase) modify(ctx context.Context, op string, caller world.UserID, id uint64, change func(*world.Decor)) (Response, error) {
	var out Response
	err := u.Runner.Run(ctx, op, func(txCtx context.Context) error {
		if _, err := u.Repos.Users.Get(txCtx, caller); err != nil {
			return ports.NotFoundAs(err, "user does not exist")
		}
		d, err := u.Repos.Decor.Get(txCtx, id)
		if err != nil {
			return ports.NotFoundAs(err, "decor does not exist")
		}
		change(&d)
		d.LastModifier = caller
		if err := u.Repos.Decor.Update(txCtx, d); err != nil {
			return fmt.Errorf("update decor: %w", err)
		}
		out = Response{Decor: d}
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	return out, nil
}

func (u UseCase) Delete(ctx context.Context, req DeleteRequest) (DeleteResponse, error) {
	if err := checkCaller(req.UserID); err != nil {
		return DeleteResponse{}, err
	}
	var out DeleteResponse
	err := u.Runner.Run(ctx, OpDelete, func(txCtx context.Context) error {
		res, err := u.delete(txCtx, u.Random.New(), req)
		out = res
		return err
	})
	if err != nil {
		return DeleteResponse{}, err
	}
	return out, nil
}

func (u UseCase) delete(ctx context.Context, rng ports.Random, req DeleteRequest) (DeleteResponse, error) {
	if _, err := u.Repos.Users.Get(ctx, req.UserID); err != nil {
		return DeleteResponse{}, ports.NotFoundAs(err, "user does not exist")
	}
	d, err := u.Repos.Decor.Get(ctx, req.DecorID)
	if err != nil {
		return DeleteResponse{}, ports.NotFoundAs(err, "decor does not exist")
	}
	res := DeleteResponse{DecorID: d.ID}

	if d.Owner == req.UserID {
		item, err := u.Repos.Inventory.Insert(ctx, world.InventoryItem{Owner: req.UserID, Key: d.Key})
		if err != nil {
			return DeleteResponse{}, fmt.Errorf("return inventory item: %w", err)
		}
		res.Returned = &item
	} else if err := u.penalize(ctx, rng, req.UserID, d, &res); err != nil {
		return DeleteResponse{}, err
	}

	if err := u.Repos.Decor.Delete(ctx, d.ID, u.now()); err != nil {
		return DeleteResponse{}, fmt.Errorf("delete decor: %w", err)
	}
	return res, nil
}

// penalize settles a foreign delete: an energy transfer from caller to owner, or a grief
// tick on the owner that pays out a package once the threshold is reached.
func (u UseCase) penalize(ctx context.Context, rng ports.Random, caller world.UserID, d world.Decor, res *DeleteResponse) error {
	if u.Tuning.EnergyEnabled() {
		return u.transferEnergy(ctx, caller, d.Owner, res)
	}

	owner, err := u.Repos.Users.Get(ctx, d.Owner)
	if errors.Is(err, ports.ErrNotFound) {
		u.logger().Warn("decor owner missing, skipping grief", "decor_id", d.ID, "owner", d.Owner)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load decor owner: %w", err)
	}

	rewarded := owner.RecordGrief(u.Tuning.GriefThreshold)
	if _, err := u.Repos.Users.Update(ctx, owner); err != nil {
		return fmt.Errorf("update decor owner: %w", err)
	}
	if !rewarded {
		return nil
	}

	doors, err := u.Repos.Doors.ListByOccupant(ctx, owner.ID)
	if err != nil {
		return fmt.Errorf("list owner doors: %w", err)
	}
	if len(doors) == 0 {
		u.logger().Warn("grief threshold reached but owner is not at a door", "owner", owner.ID)
		return nil
	}
	pkg, err := u.deliveries().Deliver(ctx, rng, doors[0].ID)
	if err != nil {
		return err
	}
	u.logger().Info("grief reward delivered", "owner", owner.ID, "door_id", doors[0].ID, "package_id", pkg.Package.ID)
	res.Reward = &pkg
	return nil
}

func (u UseCase) transferEnergy(ctx context.Context, callerID, ownerID world.UserID, res *DeleteResponse) error {
	caller, err := u.Repos.Users.Get(ctx, callerID)
	if err != nil {
		return ports.NotFoundAs(err, "user does not exist")
	}
	e := u.Tuning.Energy
	if !caller.Debit(e, e.DeletePenalty) {
		return ports.Fail(ports.ErrInsufficientResource, "not enough energy")
	}

	owner, err := u.Repos.Users.Get(ctx, ownerID)
	switch {
	case errors.Is(err, ports.ErrNotFound):
		u.logger().Warn("decor owner missing, skipping energy reward", "owner", ownerID)
	case err != nil:
		return fmt.Errorf("load decor owner: %w", err)
	default:
		owner.Credit(e, e.DeleteReward)
		if _, err := u.Repos.Users.Update(ctx, owner); err != nil {
			return fmt.Errorf("update decor owner: %w", err)
		}
	}

	caller, err = u.Repos.Users.Update(ctx, caller)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	energy := caller.Energy
	res.Energy = &energy
	return nil
}

func (u UseCase) deliveries() delivery.Service {
	return delivery.Service{
		Packages: u.Repos.Packages,
		Items:    u.Repos.PackageItems,
		Tuning:   u.Tuning,
		Logger:   u.Logger,
	}
}

func (u UseCase) now() time.Time {
	if u.Now == nil {
		return time.Now().UTC()
	}
	return u.Now().UTC()
}

func (u UseCase) logger() *slog.Logger {
	if u.Logger == nil {
		return slog.Default()
	}
	return u.Logger
}

func checkCaller(id world.UserID) error {
	if strings.TrimSpace(string(id)) == "" {
		return ErrInvalidRequest
	}
	return nil
}
