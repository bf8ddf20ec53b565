package httpadapter

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"doorhop/internal/adapter/metrics/inmemory"
	"doorhop/internal/adapter/random"
	"doorhop/internal/adapter/repo/memory"
	"doorhop/internal/app/auth"
	"doorhop/internal/app/decor"
	"doorhop/internal/app/matchmaking"
	"doorhop/internal/app/ports"
	"doorhop/internal/app/provision"
	"doorhop/internal/app/shared/txrun"
	"doorhop/internal/app/social"
	"doorhop/internal/app/status"
	"doorhop/internal/app/unpack"
	"doorhop/internal/domain/world"
)

func TestRequireAuthenticatedPlayer_FromHeaders(t *testing.T) {
	salt := []byte("salt")
	key := "k1"
	h := Handler{
		AuthUC: auth.VerifyUseCase{Credentials: fakeCredentialStore{
			cred: ports.PlayerCredentialRecord{
				PlayerID: "player-1",
				KeySalt:  salt,
				KeyHash:  hashForTest(salt, key),
				Status:   auth.CredentialStatusActive,
			},
		}},
	}
	ctx := &app.RequestContext{}
	ctx.Request.Header.Set(playerIDHeader, "player-1")
	ctx.Request.Header.Set(playerKeyHeader, key)

	playerID, err := h.requireAuthenticatedPlayer(context.Background(), ctx)
	if err != nil {
		t.Fatalf("requireAuthenticatedPlayer error: %v", err)
	}
	if playerID != "player-1" {
		t.Fatalf("unexpected player id: %q", playerID)
	}
}

func TestRequireAuthenticatedPlayer_MissingHeaders(t *testing.T) {
	h := Handler{}

	ctx := &app.RequestContext{}
	if _, err := h.requireAuthenticatedPlayer(context.Background(), ctx); err != ErrMissingPlayerCredentials {
		t.Fatalf("expected ErrMissingPlayerCredentials, got %v", err)
	}

	ctx = &app.RequestContext{}
	ctx.Request.Header.Set(playerIDHeader, "player-1")
	if _, err := h.requireAuthenticatedPlayer(context.Background(), ctx); err != ErrMissingPlayerKeyHeader {
		t.Fatalf("expected ErrMissingPlayerKeyHeader, got %v", err)
	}

	ctx = &app.RequestContext{}
	ctx.Request.Header.Set(playerKeyHeader, "k")
	if _, err := h.requireAuthenticatedPlayer(context.Background(), ctx); err != ErrMissingPlayerIDHeader {
		t.Fatalf("expected ErrMissingPlayerIDHeader, got %v", err)
	}
}

func TestRequireAuthenticatedPlayer_InvalidCredentials(t *testing.T) {
	h := Handler{
		AuthUC: auth.VerifyUseCase{Credentials: fakeCredentialStore{}},
	}
	ctx := &app.RequestContext{}
	ctx.Request.Header.Set(playerIDHeader, "player-1")
	ctx.Request.Header.Set(playerKeyHeader, "wrong")

	_, err := h.requireAuthenticatedPlayer(context.Background(), ctx)
	if err != auth.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestWriteError_Mapping(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		code    string
		message string
	}{
		{ports.Fail(ports.ErrNotFound, "decor does not exist"), consts.StatusNotFound, "not_found", "decor does not exist"},
		{ports.Fail(ports.ErrInvalidState, "cannot place decor while not visiting a door"), consts.StatusConflict, "invalid_state", "cannot place decor while not visiting a door"},
		{ports.Fail(ports.ErrInsufficientResource, "not enough energy"), consts.StatusConflict, "insufficient_resource", "not enough energy"},
		{fmt.Errorf("claim door: %w", ports.ErrConflict), consts.StatusConflict, "conflict", "concurrent update, retry"},
		{decor.ErrInvalidRequest, consts.StatusBadRequest, "bad_request", decor.ErrInvalidRequest.Error()},
		{social.ErrInvalidRequest, consts.StatusBadRequest, "bad_request", social.ErrInvalidRequest.Error()},
		{auth.ErrInvalidCredentials, consts.StatusUnauthorized, "invalid_player_credentials", auth.ErrInvalidCredentials.Error()},
		{ErrMissingPlayerCredentials, consts.StatusBadRequest, "missing_player_credentials", ErrMissingPlayerCredentials.Error()},
		{fmt.Errorf("%w: empty catalog", ports.ErrInternal), consts.StatusInternalServerError, "internal_error", "internal error"},
		{errors.New("db down"), consts.StatusInternalServerError, "internal_error", "internal error"},
	}
	for _, tc := range cases {
		ctx := &app.RequestContext{}
		writeError(ctx, tc.err)

		if got := ctx.Response.StatusCode(); got != tc.status {
			t.Fatalf("%v: status mismatch: got=%d want=%d", tc.err, got, tc.status)
		}
		var body map[string]map[string]any
		if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		if got := body["error"]["code"]; got != tc.code {
			t.Fatalf("%v: code mismatch: got=%v want=%v", tc.err, got, tc.code)
		}
		if got := body["error"]["message"]; got != tc.message {
			t.Fatalf("%v: message mismatch: got=%v want=%v", tc.err, got, tc.message)
		}
	}
}

func TestWriteError_ConflictIsRetryable(t *testing.T) {
	ctx := &app.RequestContext{}
	writeError(ctx, ports.ErrConflict)
	var body map[string]map[string]any
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body["error"]["retryable"] != true {
		t.Fatalf("expected retryable conflict, got %v", body["error"])
	}
}

type testServer struct {
	h     Handler
	repos ports.Repositories
	kpi   *inmemory.Recorder
}

func newTestServer() testServer {
	store := memory.NewStore()
	repos := memory.NewRepositories(store)
	tx := memory.NewTxManager(store)
	kpi := inmemory.NewRecorder()
	tuning := world.DefaultTuning()
	runner := txrun.Runner{Tx: tx, Metrics: kpi, Attempts: tuning.MatchAttempts}
	src := random.NewSeeded(99)
	prov := provision.UseCase{Runner: runner, Repos: repos, Random: src, Tuning: tuning}

	return testServer{
		repos: repos,
		kpi:   kpi,
		h: Handler{
			RegisterUC: auth.RegisterUseCase{Credentials: repos.Credentials, Provision: prov, Runner: runner, Random: src},
			AuthUC:     auth.VerifyUseCase{Credentials: repos.Credentials},
			ConnectUC:  prov,
			StatusUC:   status.UseCase{Runner: runner, Repos: repos, Tuning: tuning},
			EnterUC:    matchmaking.UseCase{Runner: runner, Repos: repos, Random: src, Tuning: tuning},
			DecorUC:    decor.UseCase{Runner: runner, Repos: repos, Random: src, Tuning: tuning},
			LikeUC:     social.UseCase{Runner: runner, Repos: repos},
			UnpackUC:   unpack.UseCase{Runner: runner, Repos: repos},
			KPI:        kpi,
		},
	}
}

type player struct {
	ID  string
	Key string
}

func (s testServer) register(t *testing.T) player {
	t.Helper()
	ctx := &app.RequestContext{}
	s.h.register(context.Background(), ctx)
	if got := ctx.Response.StatusCode(); got != consts.StatusCreated {
		t.Fatalf("register status %d: %s", got, ctx.Response.Body())
	}
	var body struct {
		PlayerID  string `json:"player_id"`
		PlayerKey string `json:"player_key"`
	}
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal register: %v", err)
	}
	return player{ID: body.PlayerID, Key: body.PlayerKey}
}

func call(p player, handler app.HandlerFunc, body any) *app.RequestContext {
	ctx := &app.RequestContext{}
	ctx.Request.Header.Set(playerIDHeader, p.ID)
	ctx.Request.Header.Set(playerKeyHeader, p.Key)
	if body != nil {
		b, _ := json.Marshal(body)
		ctx.Request.SetBody(b)
	}
	handler(context.Background(), ctx)
	return ctx
}

func decode[T any](t *testing.T, ctx *app.RequestContext) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(ctx.Response.Body(), &out); err != nil {
		t.Fatalf("unmarshal %s: %v", ctx.Response.Body(), err)
	}
	return out
}

func TestHandler_VisitDecorateLikeFlow(t *testing.T) {
	s := newTestServer()
	a := s.register(t)
	b := s.register(t)

	// b moves on so a can enter b's first door.
	if ctx := call(b, s.h.enterDoor, nil); ctx.Response.StatusCode() != consts.StatusOK {
		t.Fatalf("b enter: %d %s", ctx.Response.StatusCode(), ctx.Response.Body())
	}
	enter := call(a, s.h.enterDoor, nil)
	if enter.Response.StatusCode() != consts.StatusOK {
		t.Fatalf("a enter: %d %s", enter.Response.StatusCode(), enter.Response.Body())
	}
	entered := decode[matchmaking.Response](t, enter)
	if entered.Door.Owner != world.UserID(b.ID) || entered.Created {
		t.Fatalf("expected a to land on b's door, got %+v", entered.Door)
	}

	st := decode[status.Response](t, call(a, s.h.status, nil))
	if len(st.Packages) == 0 {
		t.Fatalf("expected packages at b's door")
	}

	opened := call(a, s.h.openPackage, openPackageRequest{PackageID: st.Packages[0].Package.ID})
	if opened.Response.StatusCode() != consts.StatusOK {
		t.Fatalf("open: %d %s", opened.Response.StatusCode(), opened.Response.Body())
	}
	items := decode[unpack.Response](t, opened).Items
	if len(items) == 0 {
		t.Fatalf("expected items from package")
	}

	created := call(a, s.h.createDecor, createDecorRequest{InventoryID: items[0].ID, X: 3, Y: 4})
	if created.Response.StatusCode() != consts.StatusCreated {
		t.Fatalf("create: %d %s", created.Response.StatusCode(), created.Response.Body())
	}
	placed := decode[decor.Response](t, created).Decor
	if placed.DoorID != entered.Door.ID {
		t.Fatalf("decor placed on wrong door: %+v", placed)
	}

	liked := call(b, s.h.like, likeRequest{Kind: "decor", ID: placed.ID})
	if liked.Response.StatusCode() != consts.StatusOK {
		t.Fatalf("like: %d %s", liked.Response.StatusCode(), liked.Response.Body())
	}
	if got := decode[social.Response](t, liked).Interactions; len(got) != 1 || got[0].Target != world.UserID(a.ID) {
		t.Fatalf("unexpected like result: %+v", got)
	}

	again := call(a, s.h.openPackage, openPackageRequest{PackageID: st.Packages[0].Package.ID})
	if again.Response.StatusCode() != consts.StatusNotFound {
		t.Fatalf("reopen must be 404, got %d", again.Response.StatusCode())
	}

	snap := s.kpi.Snapshot()
	if snap.ByOp[matchmaking.Op].Success != 2 || snap.ByOp[unpack.Op].Failure != 1 {
		t.Fatalf("unexpected kpi: %+v", snap.ByOp)
	}
}

func TestHandler_CreateDecorWithoutDoorIsConflict(t *testing.T) {
	s := newTestServer()
	a := s.register(t)
	ctx := context.Background()

	doors, _ := s.repos.Doors.ListByOccupant(ctx, world.UserID(a.ID))
	for _, d := range doors {
		d.Occupant = nil
		if _, err := s.repos.Doors.Update(ctx, d); err != nil {
			t.Fatalf("vacate: %v", err)
		}
	}
	item, _ := s.repos.Inventory.Insert(ctx, world.InventoryItem{Owner: world.UserID(a.ID), Key: "lamp"})

	res := call(a, s.h.createDecor, createDecorRequest{InventoryID: item.ID})
	if res.Response.StatusCode() != consts.StatusConflict {
		t.Fatalf("expected 409, got %d", res.Response.StatusCode())
	}
	body := decode[map[string]map[string]any](t, res)
	if body["error"]["message"] != "cannot place decor while not visiting a door" {
		t.Fatalf("unexpected message: %v", body["error"]["message"])
	}
}

func TestHandler_InvalidJSON(t *testing.T) {
	s := newTestServer()
	a := s.register(t)
	ctx := &app.RequestContext{}
	ctx.Request.Header.Set(playerIDHeader, a.ID)
	ctx.Request.Header.Set(playerKeyHeader, a.Key)
	ctx.Request.SetBody([]byte("{"))
	s.h.moveDecor(context.Background(), ctx)
	if ctx.Response.StatusCode() != consts.StatusBadRequest {
		t.Fatalf("expected 400, got %d", ctx.Response.StatusCode())
	}
}

func TestHandler_KPINotConfigured(t *testing.T) {
	ctx := &app.RequestContext{}
	Handler{}.kpi(context.Background(), ctx)
	if ctx.Response.StatusCode() != consts.StatusNotFound {
		t.Fatalf("expected 404, got %d", ctx.Response.StatusCode())
	}
}

type fakeCredentialStore struct {
	cred ports.PlayerCredentialRecord
}

func (s fakeCredentialStore) Create(_ context.Context, _ ports.PlayerCredentialRecord) error {
	return nil
}

func (s fakeCredentialStore) GetByPlayerID(_ context.Context, _ world.UserID) (ports.PlayerCredentialRecord, error) {
	if s.cred.PlayerID == "" {
		return ports.PlayerCredentialRecord{}, ports.ErrNotFound
	}
	return s.cred, nil
}

func hashForTest(salt []byte, key string) []byte {
	b := make([]byte, 0, len(salt)+len(key))
	b = append(b, salt...)
	b = append(b, key...)
	sum := sha256.Sum256(b)
	out := make([]byte, len(sum))
	copy(out, sum[:])
	return out
}
