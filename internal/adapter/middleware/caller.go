package middleware

import (
	"net/http"
	"strings"

	"loan-ledger/pkg/id"

	"github.com/labstack/echo/v4"
)

// HeaderCallerID carries the identity of the participant acting on the ledger.
const HeaderCallerID = "Ax-Caller-Id"

const callerKey = "ledger.caller"

func isMutation(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	return true
}

// CallerIdentity validates Ax-Caller-Id and stores it on the context.
// Mutations require the header; reads accept it when present.
func CallerIdentity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			who := strings.TrimSpace(c.Request().Header.Get(HeaderCallerID))
			switch {
			case who == "" && isMutation(c.Request().Method):
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing " + HeaderCallerID})
			case who != "" && !id.Valid(who):
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid " + HeaderCallerID})
			}
			if who != "" {
				c.Set(callerKey, who)
			}
			return next(c)
		}
	}
}

// Caller returns the identity stored by CallerIdentity, or "".
func Caller(c echo.Context) string {
	who, _ := c.Get(callerKey).(string)
	return who
}
