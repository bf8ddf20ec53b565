package unpack

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

const Op = "open_package"

var ErrInvalidRequest = errors.New("invalid open package request")

type Request struct {
	UserID    world.UserID
	PackageID uint64
}

type Response struct {
	PackageID uint64                `json:"package_id"`
	Items     []world.InventoryItem `json:"items"`
}

type UseCase struct {
	Runner txrun.Runner
	Repos  ports.Repositories
	Logger *slog.Logger
}

// Execute moves every item of the package into the caller's inventory and removes the
// package. Anyone may open any package; location is not checked.
func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(string(req.UserID)) == "" {
		return Response{}, ErrInvalidRequest
	}

	var out Response
	err := u.Runner.Run(ctx, Op, func(txCtx context.Context) error {
		if _, err := u.Repos.Users.Get(txCtx, req.UserID); err != nil {
			return ports.NotFoundAs(err, "user does not exist")
		}
		pkg, err := u.Repos.Packages.Get(txCtx, req.PackageID)
		if err != nil {
			return ports.NotFoundAs(err, "package not found")
		}
		items, err := u.Repos.PackageItems.ListByPackage(txCtx, pkg.ID)
		if err != nil {
			return fmt.Errorf("list package items: %w", err)
		}

		moved := make([]world.InventoryItem, 0, len(items))
		for _, it := range items {
			inv, err := u.Repos.Inventory.Insert(txCtx, world.InventoryItem{Owner: req.UserID, Key: it.Key})
			if err != nil {
				return fmt.Errorf("insert inventory item: %w", err)
			}
			if err := u.Repos.PackageItems.Delete(txCtx, it.ID); err != nil {
				return fmt.Errorf("delete package item: %w", err)
			}
			moved = append(moved, inv)
		}
		if err := u.Repos.Packages.Delete(txCtx, pkg.ID); err != nil {
			return fmt.Errorf("delete package: %w", err)
		}

		u.logger().Info("package opened", "user_id", req.UserID, "package_id", pkg.ID, "items", len(moved))
		out = Response{PackageID: pkg.ID, Items: moved}
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	return out, nil
}

func (u UseCase) logger() *slog.Logger {
	if u.Logger == nil {
		return slog.Default()
	}
	return u.Logger
}
