package http

import (
	"net/http"
	"strconv"

	"loan-ledger/internal/adapter/middleware"
	"loan-ledger/internal/domain/loan"

	"github.com/labstack/echo/v4"
)

// bindValid binds and validates req, writing the error response itself.
// ok is false when a response has already been sent.
func bindValid(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body", Kind: loan.KindValidation.String()})
	}
	if err := c.Validate(req); err != nil {
		return false, respondInvalid(c, err)
	}
	return true, nil
}

func pathIndex(c echo.Context) (uint64, bool) {
	n, err := strconv.ParseUint(c.Param("index"), 10, 64)
	return n, err == nil
}

func badIndex(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan index", Kind: loan.KindValidation.String()})
}

func caller(c echo.Context) string { return middleware.Caller(c) }
