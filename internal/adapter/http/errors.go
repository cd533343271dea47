package http

import (
	"errors"
	"log/slog"
	"net/http"

	"loan-ledger/internal/domain/account"
	"loan-ledger/internal/domain/loan"

	"github.com/labstack/echo/v4"
)

var kindStatus = map[loan.Kind]int{
	loan.KindValidation:    http.StatusBadRequest,
	loan.KindAuthorization: http.StatusForbidden,
	loan.KindStateConflict: http.StatusConflict,
	loan.KindTemporal:      http.StatusGone,
	loan.KindNotFound:      http.StatusNotFound,
	loan.KindCustody:       http.StatusPaymentRequired,
}

// statusOf maps a usecase error to an HTTP status and error kind.
func statusOf(err error) (int, string) {
	var re *loan.RuleError
	if errors.As(err, &re) {
		if code, ok := kindStatus[re.Kind]; ok {
			return code, re.Kind.String()
		}
	}
	switch {
	case errors.Is(err, account.ErrInsufficientBalance):
		return http.StatusPaymentRequired, loan.KindCustody.String()
	case errors.Is(err, account.ErrInvalidAmount), errors.Is(err, account.ErrReservedAccount):
		return http.StatusBadRequest, loan.KindValidation.String()
	case errors.Is(err, account.ErrNotOwner):
		return http.StatusForbidden, loan.KindAuthorization.String()
	}
	return http.StatusInternalServerError, ""
}

func respondError(c echo.Context, err error) error {
	code, kind := statusOf(err)
	if code == http.StatusInternalServerError {
		slog.Error("request failed", "path", c.Path(), "err", err)
		return c.JSON(code, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(code, ErrorResponse{Error: err.Error(), Kind: kind})
}

func respondInvalid(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "validation failed",
		Kind:    loan.KindValidation.String(),
		Details: ToFieldErrors(err),
	})
}
