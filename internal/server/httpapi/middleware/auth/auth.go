// Package auth is a huma middleware that turns a bearer token into an
// identity.AccessControl on the request context.
package auth

import (
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/dmitrijs2005/vaultkeeper/internal/logging"
	jwtauth "github.com/dmitrijs2005/vaultkeeper/internal/server/auth"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/identity"
)

const bearerPrefix = "Bearer "

type Auth struct {
	api    huma.API
	secret []byte
	log    logging.Logger
}

func New(api huma.API, secretKey string, log logging.Logger) *Auth {
	return &Auth{
		api:    api,
		secret: []byte(secretKey),
		log:    log.With("module", "http_auth"),
	}
}

func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		header := ctx.Header("Authorization")
		token, ok := strings.CutPrefix(header, bearerPrefix)
		if !ok || token == "" {
			a.unauthorized(ctx, "missing bearer token")
			return
		}

		uac, err := jwtauth.ParseToken(token, a.secret)
		if err != nil {
			a.log.Debug(ctx.Context(), "token rejected", "error", err)
			a.unauthorized(ctx, "invalid token")
			return
		}

		next(huma.WithContext(ctx, identity.NewContext(ctx.Context(), uac)))
	}
}

func (a *Auth) unauthorized(ctx huma.Context, msg string) {
	if err := huma.WriteErr(a.api, ctx, http.StatusUnauthorized, msg); err != nil {
		a.log.Error(ctx.Context(), "write error response", "error", err)
	}
}
