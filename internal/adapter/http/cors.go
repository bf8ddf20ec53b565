package httpadapter

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const (
	corsAllowMethods = "GET,POST,OPTIONS"
	corsAllowHeaders = "Content-Type," + playerIDHeader + "," + playerKeyHeader
	corsAnyOrigin    = "*"
)

type cors struct {
	origin string
}

func (c cors) apply(ctx *app.RequestContext) {
	origin := c.origin
	if origin == "" {
		origin = corsAnyOrigin
	}
	ctx.Response.Header.Set("Access-Control-Allow-Origin", origin)
	ctx.Response.Header.Set("Access-Control-Allow-Methods", corsAllowMethods)
	ctx.Response.Header.Set("Access-Control-Allow-Headers", corsAllowHeaders)
	ctx.Response.Header.Set("Access-Control-Max-Age", "600")
	if origin != corsAnyOrigin {
		ctx.Response.Header.Set("Vary", "Origin")
	}
}

// middleware answers preflight requests itself; browser clients send the player
// credentials as custom headers, so every authenticated call is preflighted.
func (c cors) middleware() app.HandlerFunc {
	return func(rc context.Context, ctx *app.RequestContext) {
		c.apply(ctx)
		if string(ctx.Method()) == consts.MethodOptions {
			ctx.AbortWithStatus(consts.StatusNoContent)
			return
		}
		ctx.Next(rc)
	}
}
