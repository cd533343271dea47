package http

import (
	"net/http"

	"loan-ledger/internal/domain/loan"
	accountuc "loan-ledger/internal/usecase/account"
	"loan-ledger/pkg/amount"

	"github.com/labstack/echo/v4"
)

type AccountHandler struct{ uc *accountuc.Usecase }

func NewAccountHandler(uc *accountuc.Usecase) *AccountHandler { return &AccountHandler{uc: uc} }

type movementReq struct {
	Amount string `json:"amount" validate:"required,amount"`
}

type accountPath struct {
	AccountID string `param:"account_id" validate:"required,hex32"`
}

func accountID(c echo.Context) (string, bool) {
	p := accountPath{AccountID: c.Param("account_id")}
	return p.AccountID, c.Validate(&p) == nil
}

func badAccount(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid account id", Kind: loan.KindValidation.String()})
}

func (h *AccountHandler) Balance(c echo.Context) error {
	acc, ok := accountID(c)
	if !ok {
		return badAccount(c)
	}
	dto, err := h.uc.Balance(c.Request().Context(), acc)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AccountHandler) Transfers(c echo.Context) error {
	acc, ok := accountID(c)
	if !ok {
		return badAccount(c)
	}
	ts, err := h.uc.Transfers(c.Request().Context(), acc)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ts)
}

func (h *AccountHandler) Deposit(c echo.Context) error {
	acc, ok := accountID(c)
	if !ok {
		return badAccount(c)
	}
	var req movementReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Deposit(c.Request().Context(), accountuc.DepositInput{
		AccountID: acc,
		Amount:    amount.MustParse(req.Amount),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AccountHandler) Withdraw(c echo.Context) error {
	acc, ok := accountID(c)
	if !ok {
		return badAccount(c)
	}
	var req movementReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Withdraw(c.Request().Context(), accountuc.WithdrawInput{
		Caller:    caller(c),
		AccountID: acc,
		Amount:    amount.MustParse(req.Amount),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
