package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"doorhop/internal/app/auth"
	"doorhop/internal/app/decor"
	"doorhop/internal/app/matchmaking"
	"doorhop/internal/app/ports"
	"doorhop/internal/app/provision"
	"doorhop/internal/app/social"
	"doorhop/internal/app/status"
	"doorhop/internal/app/unpack"
	"doorhop/internal/domain/world"
)

const playerIDHeader = "X-Player-ID"
const playerKeyHeader = "X-Player-Key"

type Handler struct {
	RegisterUC auth.RegisterUseCase
	AuthUC     auth.VerifyUseCase
	ConnectUC  provision.UseCase
	StatusUC   status.UseCase
	EnterUC    matchmaking.UseCase
	DecorUC    decor.UseCase
	LikeUC     social.UseCase
	UnpackUC   unpack.UseCase
	KPI        kpiSnapshotProvider

	// AllowOrigin is the CORS origin; empty allows any.
	AllowOrigin string
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(cors{origin: h.AllowOrigin}.middleware())

	player := s.Group("/api/player")
	player.POST("/register", h.register)
	player.POST("/connect", h.connect)
	player.POST("/status", h.status)

	s.POST("/api/door/enter", h.enterDoor)

	d := s.Group("/api/decor")
	d.POST("/create", h.createDecor)
	d.POST("/move", h.moveDecor)
	d.POST("/delete", h.deleteDecor)
	d.POST("/text", h.updateDecorText)

	s.POST("/api/like", h.like)
	s.POST("/api/package/open", h.openPackage)

	s.GET("/ops/kpi", h.kpi)
}

type createDecorRequest struct {
	InventoryID uint64 `json:"inventory_id"`
	X           uint32 `json:"x"`
	Y           uint32 `json:"y"`
}

type moveDecorRequest struct {
	DecorID uint64 `json:"decor_id"`
	X       uint32 `json:"x"`
	Y       uint32 `json:"y"`
	Rot     uint32 `json:"rot"`
}

type deleteDecorRequest struct {
	DecorID uint64 `json:"decor_id"`
}

type decorTextRequest struct {
	DecorID uint64 `json:"decor_id"`
	Text    string `json:"text"`
}

type likeRequest struct {
	Kind string `json:"kind"`
	ID   uint64 `json:"id"`
}

type openPackageRequest struct {
	PackageID uint64 `json:"package_id"`
}

func (h Handler) register(c context.Context, ctx *app.RequestContext) {
	resp, err := h.RegisterUC.Execute(c, auth.RegisterRequest{})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) connect(c context.Context, ctx *app.RequestContext) {
	playerID, err := h.requireAuthenticatedPlayer(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.ConnectUC.Execute(c, provision.Request{UserID: playerID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) status(c context.Context, ctx *app.RequestContext) {
	playerID, err := h.requireAuthenticatedPlayer(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.StatusUC.Execute(c, status.Request{UserID: playerID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) enterDoor(c context.Context, ctx *app.RequestContext) {
	playerID, err := h.requireAuthenticatedPlayer(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.EnterUC.Execute(c, matchmaking.Request{UserID: playerID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) createDecor(c context.Context, ctx *app.RequestContext) {
	playerID, err := h.requireAuthenticatedPlayer(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body createDecorRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.DecorUC.Create(c, decor.CreateRequest{
		UserID:      playerID,
		InventoryID: body.InventoryID,
		X:           body.X,
		Y:           body.Y,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) moveDecor(c context.Context, ctx *app.RequestContext) {
	playerID, err := h.requireAuthenticatedPlayer(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body moveDecorRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.DecorUC.Move(c, decor.MoveRequest{
		UserID:  playerID,
		DecorID: body.DecorID,
		X:       body.X,
		Y:       body.Y,
		Rot:     body.Rot,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) deleteDecor(c context.Context, ctx *app.RequestContext) {
	playerID, err := h.requireAuthenticatedPlayer(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body deleteDecorRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.DecorUC.Delete(c, decor.DeleteRequest{UserID: playerID, DecorID: body.DecorID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) updateDecorText(c context.Context, ctx *app.RequestContext) {
	playerID, err := h.requireAuthenticatedPlayer(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body decorTextRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.DecorUC.UpdateText(c, decor.TextRequest{UserID: playerID, DecorID: body.DecorID, Text: body.Text})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) like(c context.Context, ctx *app.RequestContext) {
	playerID, err := h.requireAuthenticatedPlayer(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body likeRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.LikeUC.Execute(c, social.Request{
		UserID: playerID,
		Target: social.Target{Kind: social.TargetKind(strings.ToLower(strings.TrimSpace(body.Kind))), ID: body.ID},
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) openPackage(c context.Context, ctx *app.RequestContext) {
	playerID, err := h.requireAuthenticatedPlayer(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body openPackageRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.UnpackUC.Execute(c, unpack.Request{UserID: playerID, PackageID: body.PackageID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

var ErrMissingPlayerIDHeader = errors.New("missing x-player-id header")
var ErrMissingPlayerKeyHeader = errors.New("missing x-player-key header")
var ErrMissingPlayerCredentials = errors.New("missing player credentials")

func (h Handler) requireAuthenticatedPlayer(c context.Context, ctx *app.RequestContext) (world.UserID, error) {
	playerID := strings.TrimSpace(string(ctx.GetHeader(playerIDHeader)))
	playerKey := strings.TrimSpace(string(ctx.GetHeader(playerKeyHeader)))
	if playerID == "" && playerKey == "" {
		return "", ErrMissingPlayerCredentials
	}
	if playerID == "" {
		return "", ErrMissingPlayerIDHeader
	}
	if playerKey == "" {
		return "", ErrMissingPlayerKeyHeader
	}
	if err := h.AuthUC.Execute(c, auth.VerifyRequest{
		PlayerID:  playerID,
		PlayerKey: playerKey,
	}); err != nil {
		return "", err
	}
	return world.UserID(playerID), nil
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrMissingPlayerCredentials):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_player_credentials", err.Error())
	case errors.Is(err, ErrMissingPlayerIDHeader):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_player_id", err.Error())
	case errors.Is(err, ErrMissingPlayerKeyHeader):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_player_key", err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeErrorBody(ctx, consts.StatusUnauthorized, "invalid_player_credentials", err.Error())
	case errors.Is(err, auth.ErrInvalidRequest),
		errors.Is(err, provision.ErrInvalidRequest),
		errors.Is(err, status.ErrInvalidRequest),
		errors.Is(err, matchmaking.ErrInvalidRequest),
		errors.Is(err, decor.ErrInvalidRequest),
		errors.Is(err, social.ErrInvalidRequest),
		errors.Is(err, unpack.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrInvalidState):
		writeErrorBody(ctx, consts.StatusConflict, "invalid_state", err.Error())
	case errors.Is(err, ports.ErrInsufficientResource):
		writeErrorBody(ctx, consts.StatusConflict, "insufficient_resource", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeRetryableError(ctx, consts.StatusConflict, "conflict", "concurrent update, retry")
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": message,
		},
	})
}

func writeRetryableError(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]any{
			"code":      code,
			"message":   message,
			"retryable": true,
		},
	})
}
