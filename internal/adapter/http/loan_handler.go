package http

import (
	"context"
	"net/http"

	"loan-ledger/internal/usecase/ledger"
	"loan-ledger/pkg/amount"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct{ uc *ledger.Usecase }

func NewLoanHandler(uc *ledger.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type requestLoanReq struct {
	LoanAmount           string `json:"loan_amount" validate:"required,amount"`
	GuarantorInterestAsk string `json:"guarantor_interest_ask" validate:"required,amount"`
	PaybackLengthSecs    uint64 `json:"payback_length_secs"`
}

type guaranteeReq struct {
	Interest string `json:"interest" validate:"required,amount"`
	Value    string `json:"value" validate:"required,amount"`
}

type valueReq struct {
	Value string `json:"value" validate:"required,amount"`
}

func (h *LoanHandler) RequestLoan(c echo.Context) error {
	var req requestLoanReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.uc.RequestLoan(c.Request().Context(), ledger.RequestLoanInput{
		Caller:               caller(c),
		LoanAmount:           amount.MustParse(req.LoanAmount),
		GuarantorInterestAsk: amount.MustParse(req.GuarantorInterestAsk),
		PaybackLengthSecs:    req.PaybackLengthSecs,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) Count(c echo.Context) error {
	n, err := h.uc.NumberOfLoanRequests(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]uint64{"count": n})
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	index, ok := pathIndex(c)
	if !ok {
		return badIndex(c)
	}
	dto, err := h.uc.ViewLoanRequest(c.Request().Context(), index)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Transfers(c echo.Context) error {
	index, ok := pathIndex(c)
	if !ok {
		return badIndex(c)
	}
	ts, err := h.uc.LoanTransfers(c.Request().Context(), index)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ts)
}

func (h *LoanHandler) Guarantee(c echo.Context) error {
	index, ok := pathIndex(c)
	if !ok {
		return badIndex(c)
	}
	var req guaranteeReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.uc.GuaranteeLoan(c.Request().Context(), ledger.GuaranteeInput{
		Caller:   caller(c),
		Index:    index,
		Interest: amount.MustParse(req.Interest),
		Value:    amount.MustParse(req.Value),
	})
	return h.reply(c, dto, err)
}

func (h *LoanHandler) Accept(c echo.Context) error {
	return h.call(c, h.uc.AcceptGuarantee)
}

func (h *LoanHandler) Reject(c echo.Context) error {
	return h.call(c, h.uc.RejectGuarantee)
}

func (h *LoanHandler) Forfeit(c echo.Context) error {
	return h.call(c, h.uc.MissedPaybackDate)
}

func (h *LoanHandler) Grant(c echo.Context) error {
	return h.payment(c, h.uc.GrantLoan)
}

func (h *LoanHandler) Pay(c echo.Context) error {
	return h.payment(c, h.uc.PayLoan)
}

type callFn = func(ctx context.Context, in ledger.CallInput) (*ledger.LoanRequestDTO, error)
type paymentFn = func(ctx context.Context, in ledger.PaymentInput) (*ledger.LoanRequestDTO, error)

func (h *LoanHandler) call(c echo.Context, fn callFn) error {
	index, ok := pathIndex(c)
	if !ok {
		return badIndex(c)
	}
	dto, err := fn(c.Request().Context(), ledger.CallInput{Caller: caller(c), Index: index})
	return h.reply(c, dto, err)
}

func (h *LoanHandler) payment(c echo.Context, fn paymentFn) error {
	index, ok := pathIndex(c)
	if !ok {
		return badIndex(c)
	}
	var req valueReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := fn(c.Request().Context(), ledger.PaymentInput{
		Caller: caller(c),
		Index:  index,
		Value:  amount.MustParse(req.Value),
	})
	return h.reply(c, dto, err)
}

func (h *LoanHandler) reply(c echo.Context, dto *ledger.LoanRequestDTO, err error) error {
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
