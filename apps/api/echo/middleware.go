package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/HIKARU0627/Kadai-Manager-web-sub000/core"
)

// Local account management lives outside this service; callers identify
// themselves through a trusted gateway header.
const userIDHeader = "X-User-ID"

const userIDContextKey = "userID"

func userIDMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			uid := core.CleanString(ctx.Request().Header.Get(userIDHeader))
			if uid == "" {
				return errUnauthorized
			}
			ctx.Set(userIDContextKey, uid)
			return next(ctx)
		}
	}
}

func getContextUserID(ctx echo.Context) (string, error) {
	if uid, ok := ctx.Get(userIDContextKey).(string); ok && uid != "" {
		return uid, nil
	}
	return "", errUnauthorized
}
