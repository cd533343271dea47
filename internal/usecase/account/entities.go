package account

import (
	"time"

	"loan-ledger/pkg/amount"
)

type DepositInput struct {
	AccountID string
	Amount    amount.Amount
}

type WithdrawInput struct {
	Caller    string
	AccountID string
	Amount    amount.Amount
}

type AccountDTO struct {
	AccountID string        `json:"account_id"`
	Balance   amount.Amount `json:"balance"`
	UpdatedAt time.Time     `json:"updated_at"`
}
