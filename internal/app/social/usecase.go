package social

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"doorhop/internal/app/ports"
	"doorhop/internal/app/shared/txrun"
	"doorhop/internal/domain/world"
)

const Op = "like"

type TargetKind string

const (
	TargetDoor  TargetKind = "door"
	TargetDecor TargetKind = "decor"
)

var ErrInvalidRequest = errors.New("invalid like request")

type Target struct {
	Kind TargetKind `json:"kind"`
	ID   uint64     `json:"id"`
}

type Request struct {
	UserID world.UserID
	Target Target
}

type Response struct {
	Interactions []world.Interaction `json:"interactions"`
}

type UseCase struct {
	Runner txrun.Runner
	Repos  ports.Repositories
	Logger *slog.Logger
}

// Execute records one like per distinct recipient of the target. A door's recipient is its
// owner; a decor also credits its last modifier. Recipients that no longer exist are skipped.
func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(string(req.UserID)) == "" {
		return Response{}, ErrInvalidRequest
	}
	if req.Target.Kind != TargetDoor && req.Target.Kind != TargetDecor {
		return Response{}, ErrInvalidRequest
	}

	var out Response
	err := u.Runner.Run(ctx, Op, func(txCtx context.Context) error {
		if _, err := u.Repos.Users.Get(txCtx, req.UserID); err != nil {
			return ports.NotFoundAs(err, "user does not exist")
		}
		recipients, err := u.recipients(txCtx, req.Target)
		if err != nil {
			return err
		}

		out = Response{Interactions: make([]world.Interaction, 0, len(recipients))}
		for _, r := range recipients {
			if _, err := u.Repos.Users.Get(txCtx, r); err != nil {
				if errors.Is(err, ports.ErrNotFound) {
					u.logger().Warn("like recipient missing, skipping", "target", r, "actor", req.UserID)
					continue
				}
				return fmt.Errorf("load recipient: %w", err)
			}
			rec, err := u.Repos.Interactions.Append(txCtx, world.Interaction{
				Actor:  req.UserID,
				Target: r,
				Kind:   world.InteractionLike,
			})
			if err != nil {
				return fmt.Errorf("append interaction: %w", err)
			}
			out.Interactions = append(out.Interactions, rec)
		}
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	return out, nil
}

func (u UseCase) recipients(ctx context.Context, target Target) ([]world.UserID, error) {
	switch target.Kind {
	case TargetDoor:
		door, err := u.Repos.Doors.Get(ctx, target.ID)
		if err != nil {
			return nil, ports.NotFoundAs(err, "door does not exist")
		}
		return []world.UserID{door.Owner}, nil
	default:
		d, err := u.Repos.Decor.Get(ctx, target.ID)
		if err != nil {
			return nil, ports.NotFoundAs(err, "decor does not exist")
		}
		out := []world.UserID{d.Owner}
		if d.LastModifier != "" && d.LastModifier != d.Owner {
			out = append(out, d.LastModifier)
		}
		return out, nil
	}
}

func (u UseCase) logger() *slog.Logger {
	if u.Logger == nil {
		return slog.Default()
	}
	return u.Logger
}
