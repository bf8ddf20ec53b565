package provision

import (
	"context"
	"errors"
	"testing"

	"doorhop/internal/adapter/random"
	"doorhop/internal/adapter/repo/memory"
	"doorhop/internal/app/ports"
	"doorhop/internal/app/shared/txrun"
	"doorhop/internal/domain/world"
)

func newUseCase(tuning world.Tuning) (UseCase, ports.Repositories) {
	store := memory.NewStore()
	repos := memory.NewRepositories(store)
	return UseCase{
		Runner: txrun.Runner{Tx: memory.NewTxManager(store), Attempts: tuning.MatchAttempts},
		Repos:  repos,
		Random: random.NewSeeded(7),
		Tuning: tuning,
	}, repos
}

func TestUseCase_ProvisionsNewUser(t *testing.T) {
	uc, repos := newUseCase(world.DefaultTuning())
	ctx := context.Background()

	resp, err := uc.Execute(ctx, Request{UserID: "u1"})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !resp.Created || resp.Door == nil {
		t.Fatalf("expected created user with door, got %+v", resp)
	}
	door := *resp.Door
	if door.Owner != "u1" || !door.OccupiedBy("u1") || door.Number != 1 {
		t.Fatalf("unexpected first door: %+v", door)
	}
	if resp.User.OriginalDoorID == nil || *resp.User.OriginalDoorID != door.ID {
		t.Fatalf("original door not recorded: %+v", resp.User)
	}
	if resp.User.CurrentDoorNumber != 1 {
		t.Fatalf("expected door number 1, got %d", resp.User.CurrentDoorNumber)
	}

	pkgs, err := repos.Packages.ListByDoor(ctx, door.ID)
	if err != nil {
		t.Fatalf("list packages: %v", err)
	}
	if len(pkgs) < 1 || len(pkgs) > 2 {
		t.Fatalf("expected 1..2 seed packages, got %d", len(pkgs))
	}
	for _, p := range pkgs {
		items, err := repos.PackageItems.ListByPackage(ctx, p.ID)
		if err != nil {
			t.Fatalf("list items: %v", err)
		}
		if len(items) < 3 || len(items) > 5 {
			t.Fatalf("expected 3..5 items, got %d", len(items))
		}
		for _, it := range items {
			if !world.DefaultCatalog().Contains(it.Key) {
				t.Fatalf("item key %q not in catalog", it.Key)
			}
		}
	}

	visits, err := repos.Visits.ListByVisitor(ctx, "u1")
	if err != nil {
		t.Fatalf("list visits: %v", err)
	}
	if len(visits) != 1 || visits[0].DoorID != door.ID {
		t.Fatalf("expected visit to own door, got %+v", visits)
	}
}

func TestUseCase_IsIdempotent(t *testing.T) {
	uc, repos := newUseCase(world.DefaultTuning())
	ctx := context.Background()

	first, err := uc.Execute(ctx, Request{UserID: "u1"})
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := uc.Execute(ctx, Request{UserID: "u1"})
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if second.Created || second.Door != nil {
		t.Fatalf("second contact must not provision: %+v", second)
	}
	if second.User.Version != first.User.Version {
		t.Fatalf("user rewritten on second contact: %d != %d", second.User.Version, first.User.Version)
	}

	doors, err := repos.Doors.ListByOccupant(ctx, "u1")
	if err != nil {
		t.Fatalf("list doors: %v", err)
	}
	if len(doors) != 1 {
		t.Fatalf("expected exactly one door, got %d", len(doors))
	}
	pkgs, _ := repos.Packages.ListByDoor(ctx, doors[0].ID)
	if len(pkgs) != len(first.Packages) {
		t.Fatalf("packages changed: %d != %d", len(pkgs), len(first.Packages))
	}
}

func TestUseCase_SeedsEnergyWhenEnabled(t *testing.T) {
	tuning := world.DefaultTuning()
	tuning.Economy = world.EconomyEnergy
	uc, _ := newUseCase(tuning)

	resp, err := uc.Execute(context.Background(), Request{UserID: "u1"})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if resp.User.Energy != tuning.Energy.Initial {
		t.Fatalf("expected initial energy %d, got %d", tuning.Energy.Initial, resp.User.Energy)
	}
}

func TestUseCase_RejectsEmptyUser(t *testing.T) {
	uc, _ := newUseCase(world.DefaultTuning())
	_, err := uc.Execute(context.Background(), Request{UserID: "  "})
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestUseCase_RollsBackOnEmptyCatalog(t *testing.T) {
	tuning := world.DefaultTuning()
	tuning.Catalog = nil
	uc, repos := newUseCase(tuning)
	ctx := context.Background()

	_, err := uc.Execute(ctx, Request{UserID: "u1"})
	if !errors.Is(err, ports.ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
	if _, err := repos.Users.Get(ctx, "u1"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("user must not survive a failed provision, got %v", err)
	}
}
