package account

import (
	"errors"
	"strings"
	"time"

	"loan-ledger/pkg/amount"
)

var (
	ErrInsufficientBalance = errors.New("insufficient account balance")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrReservedAccount     = errors.New("reserved account")
	ErrNotOwner            = errors.New("not the account owner")
)

var (
	// EscrowAccountID holds value in custody of the ledger itself.
	EscrowAccountID = strings.Repeat("0", 32)
	// ExternalAccountID is the off-ledger counterparty of deposits and withdrawals.
	ExternalAccountID = strings.Repeat("f", 32)
)

func IsReserved(id string) bool { return id == EscrowAccountID || id == ExternalAccountID }

type Reason string

const (
	ReasonDeposit         Reason = "deposit"
	ReasonWithdraw        Reason = "withdraw"
	ReasonGuaranteeEscrow Reason = "guarantee.escrow"
	ReasonGuaranteeRefund Reason = "guarantee.refund"
	ReasonGrantEscrow     Reason = "grant.escrow"
	ReasonGrantPrincipal  Reason = "grant.principal"
	ReasonRepayEscrow     Reason = "repay.escrow"
	ReasonRepayGuarantor  Reason = "repay.guarantor"
	ReasonRepayLender     Reason = "repay.lender"
	ReasonForfeit         Reason = "forfeit.collateral"
)

// Table: accounts
type Account struct {
	ID        string        `gorm:"column:id;primaryKey;size:32" json:"account_id"`
	Balance   amount.Amount `gorm:"column:balance;type:varchar(78);not null" json:"balance"`
	CreatedAt time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time     `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Account) TableName() string { return "accounts" }

// Table: transfers (append-only journal)
type Transfer struct {
	ID         uint64        `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	TransferID string        `gorm:"column:transfer_id;size:36;not null;uniqueIndex" json:"transfer_id"`
	LoanIndex  *uint64       `gorm:"column:loan_idx;index" json:"loan_index,omitempty"`
	FromID     string        `gorm:"column:from_id;size:32;not null;index" json:"from"`
	ToID       string        `gorm:"column:to_id;size:32;not null;index" json:"to"`
	Amount     amount.Amount `gorm:"column:amount;type:varchar(78);not null" json:"amount"`
	Reason     Reason        `gorm:"column:reason;size:32;not null" json:"reason"`
	CreatedAt  time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Transfer) TableName() string { return "transfers" }
