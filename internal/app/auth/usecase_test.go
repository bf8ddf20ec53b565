package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"doorhop/internal/adapter/metrics/inmemory"
	"doorhop/internal/adapter/random"
	"doorhop/internal/adapter/repo/memory"
	"doorhop/internal/app/ports"
	"doorhop/internal/app/provision"
	"doorhop/internal/app/shared/txrun"
	"doorhop/internal/domain/world"
)

func newRegister(tuning world.Tuning) (RegisterUseCase, ports.Repositories) {
	uc, repos, _ := newRegisterWithMetrics(tuning)
	return uc, repos
}

func newRegisterWithMetrics(tuning world.Tuning) (RegisterUseCase, ports.Repositories, *inmemory.Recorder) {
	store := memory.NewStore()
	repos := memory.NewRepositories(store)
	tx := memory.NewTxManager(store)
	kpi := inmemory.NewRecorder()
	src := random.NewSeeded(3)
	return RegisterUseCase{
		Credentials: repos.Credentials,
		Provision: provision.UseCase{
			Runner: txrun.Runner{Tx: tx, Attempts: 1},
			Repos:  repos,
			Random: src,
			Tuning: tuning,
		},
		Runner: txrun.Runner{Tx: tx, Metrics: kpi, Attempts: 1},
		Random: src,
		Now:    func() time.Time { return time.Unix(1700000000, 0).UTC() },
	}, repos, kpi
}

func TestRegisterUseCase_CreatesCredentialAndFirstDoor(t *testing.T) {
	uc, repos := newRegister(world.DefaultTuning())
	ctx := context.Background()

	resp, err := uc.Execute(ctx, RegisterRequest{})
	if err != nil {
		t.Fatalf("register error: %v", err)
	}
	if !strings.HasPrefix(resp.PlayerID, "plr_") || resp.PlayerKey == "" || resp.IssuedAt == "" {
		t.Fatalf("expected non-empty register response: %+v", resp)
	}
	cred, err := repos.Credentials.GetByPlayerID(ctx, world.UserID(resp.PlayerID))
	if err != nil {
		t.Fatalf("credential not stored: %v", err)
	}
	if len(cred.KeySalt) == 0 || len(cred.KeyHash) == 0 {
		t.Fatalf("expected credential salt/hash stored")
	}
	if resp.Door == nil || resp.Door.Owner != world.UserID(resp.PlayerID) {
		t.Fatalf("expected first door for new player, got %+v", resp.Door)
	}
	if _, err := repos.Users.Get(ctx, world.UserID(resp.PlayerID)); err != nil {
		t.Fatalf("user not provisioned: %v", err)
	}

	verify := VerifyUseCase{Credentials: repos.Credentials}
	if err := verify.Execute(ctx, VerifyRequest{PlayerID: resp.PlayerID, PlayerKey: resp.PlayerKey}); err != nil {
		t.Fatalf("issued credential must verify: %v", err)
	}
}

func TestRegisterUseCase_RetriesOnDuplicateID(t *testing.T) {
	uc, _, kpi := newRegisterWithMetrics(world.DefaultTuning())
	ids := []string{"plr_dup", "plr_dup", "plr_fresh"}
	uc.NewID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}
	ctx := context.Background()

	first, err := uc.Execute(ctx, RegisterRequest{})
	if err != nil || first.PlayerID != "plr_dup" {
		t.Fatalf("first register: %+v %v", first, err)
	}
	second, err := uc.Execute(ctx, RegisterRequest{})
	if err != nil {
		t.Fatalf("second register: %v", err)
	}
	if second.PlayerID != "plr_fresh" {
		t.Fatalf("expected retry with fresh id, got %s", second.PlayerID)
	}
	if got := kpi.Snapshot().ByOp[Op]; got.Success != 2 || got.Conflict != 0 || got.Failure != 0 {
		t.Fatalf("expected two successful registrations recorded, got %+v", got)
	}
}

func TestRegisterUseCase_GivesUpAfterRepeatedDuplicates(t *testing.T) {
	uc, _, kpi := newRegisterWithMetrics(world.DefaultTuning())
	uc.NewID = func() string { return "plr_same" }
	ctx := context.Background()

	if _, err := uc.Execute(ctx, RegisterRequest{}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := uc.Execute(ctx, RegisterRequest{})
	if !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected conflict once every attempt collides, got %v", err)
	}
	if got := kpi.Snapshot().ByOp[Op]; got.Success != 1 || got.Conflict != 1 {
		t.Fatalf("unexpected register metrics: %+v", got)
	}
}

func TestRegisterUseCase_RollsBackOnProvisionError(t *testing.T) {
	tuning := world.DefaultTuning()
	tuning.Catalog = nil
	uc, repos := newRegister(tuning)
	uc.NewID = func() string { return "plr_x" }

	_, err := uc.Execute(context.Background(), RegisterRequest{})
	if !errors.Is(err, ports.ErrInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
	if _, err := repos.Credentials.GetByPlayerID(context.Background(), "plr_x"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected credential write rolled back, got %v", err)
	}
}

func TestVerifyUseCase_AcceptsValidCredentials(t *testing.T) {
	salt := []byte("salt")
	key := "player-secret"
	repo := &fakeCredentialRepo{
		getResult: ports.PlayerCredentialRecord{
			PlayerID: "plr_1",
			KeySalt:  salt,
			KeyHash:  credentialHash(salt, key),
			Status:   CredentialStatusActive,
		},
	}
	uc := VerifyUseCase{Credentials: repo}

	if err := uc.Execute(context.Background(), VerifyRequest{PlayerID: "plr_1", PlayerKey: key}); err != nil {
		t.Fatalf("verify error: %v", err)
	}
}

func TestVerifyUseCase_RejectsInvalidCredentials(t *testing.T) {
	salt := []byte("salt")
	repo := &fakeCredentialRepo{
		getResult: ports.PlayerCredentialRecord{
			PlayerID: "plr_1",
			KeySalt:  salt,
			KeyHash:  credentialHash(salt, "correct"),
			Status:   CredentialStatusActive,
		},
	}
	uc := VerifyUseCase{Credentials: repo}

	err := uc.Execute(context.Background(), VerifyRequest{PlayerID: "plr_1", PlayerKey: "wrong"})
	if err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestVerifyUseCase_UnknownPlayerIsInvalid(t *testing.T) {
	uc := VerifyUseCase{Credentials: &fakeCredentialRepo{getErr: ports.ErrNotFound}}
	err := uc.Execute(context.Background(), VerifyRequest{PlayerID: "plr_9", PlayerKey: "k"})
	if err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

type fakeCredentialRepo struct {
	getResult ports.PlayerCredentialRecord
	getErr    error
}

func (f *fakeCredentialRepo) Create(_ context.Context, _ ports.PlayerCredentialRecord) error {
	return nil
}

func (f *fakeCredentialRepo) GetByPlayerID(_ context.Context, _ world.UserID) (ports.PlayerCredentialRecord, error) {
	if f.getErr != nil {
		return ports.PlayerCredentialRecord{}, f.getErr
	}
	return f.getResult, nil
}
