package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"doorhop/internal/app/ports"
	"doorhop/internal/app/provision"
	"doorhop/internal/app/shared/txrun"
	"doorhop/internal/domain/world"
)

const Op = "register"

const (
	CredentialStatusActive = "active"

	registerAttempts = 3
)

var (
	ErrInvalidRequest     = errors.New("invalid auth request")
	ErrInvalidCredentials = errors.New("invalid player credentials")
)

type RegisterRequest struct{}

type RegisterResponse struct {
	PlayerID  string      `json:"player_id"`
	PlayerKey string      `json:"player_key"`
	IssuedAt  string      `json:"issued_at"`
	Door      *world.Door `json:"door,omitempty"`
}

type VerifyRequest struct {
	PlayerID  string
	PlayerKey string
}

// RegisterUseCase issues a credential and runs first contact for the new player in the
// same transaction, so a player never exists without a door.
type RegisterUseCase struct {
	Credentials ports.PlayerCredentialRepository
	Provision   provision.UseCase
	Runner      txrun.Runner
	Random      ports.RandomSource
	Now         func() time.Time
	NewID       func() string
}

type VerifyUseCase struct {
	Credentials ports.PlayerCredentialRepository
}

func (u RegisterUseCase) Execute(ctx context.Context, _ RegisterRequest) (RegisterResponse, error) {
	if u.Credentials == nil || u.Runner.Tx == nil || u.Random == nil {
		return RegisterResponse{}, ErrInvalidRequest
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	newID := u.NewID
	if newID == nil {
		newID = newPlayerID
	}
	now := nowFn().UTC()

	// a taken player id surfaces as ErrConflict; every attempt draws a fresh id and key
	runner := u.Runner
	if runner.Attempts < registerAttempts {
		runner.Attempts = registerAttempts
	}

	var out RegisterResponse
	err := runner.Run(ctx, Op, func(txCtx context.Context) error {
		playerID := world.UserID(newID())
		playerKey, err := randomToken(32)
		if err != nil {
			return err
		}
		salt, err := randomBytes(16)
		if err != nil {
			return err
		}

		if err := u.Credentials.Create(txCtx, ports.PlayerCredentialRecord{
			PlayerID:  playerID,
			KeySalt:   salt,
			KeyHash:   credentialHash(salt, playerKey),
			Status:    CredentialStatusActive,
			CreatedAt: now,
		}); err != nil {
			return err
		}
		provisioned, err := u.Provision.Provision(txCtx, u.Random.New(), playerID)
		if err != nil {
			return err
		}
		out = RegisterResponse{
			PlayerID:  string(playerID),
			PlayerKey: playerKey,
			IssuedAt:  now.Format(time.RFC3339),
			Door:      provisioned.Door,
		}
		return nil
	})
	if err != nil {
		return RegisterResponse{}, err
	}
	return out, nil
}

func (u VerifyUseCase) Execute(ctx context.Context, req VerifyRequest) error {
	req.PlayerID = strings.TrimSpace(req.PlayerID)
	req.PlayerKey = strings.TrimSpace(req.PlayerKey)
	if req.PlayerID == "" || req.PlayerKey == "" || u.Credentials == nil {
		return ErrInvalidRequest
	}

	cred, err := u.Credentials.GetByPlayerID(ctx, world.UserID(req.PlayerID))
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}
	if cred.Status != CredentialStatusActive {
		return ErrInvalidCredentials
	}

	got := credentialHash(cred.KeySalt, req.PlayerKey)
	if subtle.ConstantTimeCompare(got, cred.KeyHash) != 1 {
		return ErrInvalidCredentials
	}
	return nil
}

func credentialHash(salt []byte, key string) []byte {
	b := make([]byte, 0, len(salt)+len(key))
	b = append(b, salt...)
	b = append(b, key...)
	sum := sha256.Sum256(b)
	return sum[:]
}

func newPlayerID() string {
	return "plr_" + uuid.NewString()
}

func randomToken(n int) (string, error) {
	b, err := randomBytes(n)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}
