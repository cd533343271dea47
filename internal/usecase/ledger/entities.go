package ledger

import (
	"time"

	"loan-ledger/internal/domain/account"
	"loan-ledger/internal/domain/loan"
	"loan-ledger/pkg/amount"
)

type RequestLoanInput struct {
	Caller               string
	LoanAmount           amount.Amount
	GuarantorInterestAsk amount.Amount
	PaybackLengthSecs    uint64
}

type GuaranteeInput struct {
	Caller   string
	Index    uint64
	Interest amount.Amount
	Value    amount.Amount // attached collateral
}

// PaymentInput is used by GrantLoan and PayLoan.
type PaymentInput struct {
	Caller string
	Index  uint64
	Value  amount.Amount
}

// CallInput is used by operations that move no attached value.
type CallInput struct {
	Caller string
	Index  uint64
}

type LoanRequestDTO struct {
	Index                uint64        `json:"index"`
	Borrower             string        `json:"borrower"`
	LoanAmount           amount.Amount `json:"loan_amount"`
	GuarantorInterestAsk amount.Amount `json:"guarantor_interest_ask"`
	PaybackLengthSecs    uint64        `json:"payback_length_secs"`
	Expiry               time.Time     `json:"expiry"`
	Guarantor            string        `json:"guarantor,omitempty"`
	GuarantorInterest    amount.Amount `json:"guarantor_interest"`
	GuarantorSlot        string        `json:"guarantor_slot"`
	Lender               string        `json:"lender,omitempty"`
	State                string        `json:"state"`
	StateOfLoan          uint8         `json:"state_of_loan"`
	PaybackDeadline      *time.Time    `json:"payback_deadline,omitempty"`
	Escrowed             amount.Amount `json:"escrowed"`
	Version              uint64        `json:"version"`
	CreatedAt            time.Time     `json:"created_at"`
}

type TransferDTO struct {
	TransferID string        `json:"transfer_id"`
	LoanIndex  *uint64       `json:"loan_index,omitempty"`
	From       string        `json:"from"`
	To         string        `json:"to"`
	Amount     amount.Amount `json:"amount"`
	Reason     string        `json:"reason"`
	CreatedAt  time.Time     `json:"created_at"`
}

func toDTO(l *loan.LoanRequest) *LoanRequestDTO {
	dto := &LoanRequestDTO{
		Index:                l.Index,
		Borrower:             l.Borrower,
		LoanAmount:           l.LoanAmount,
		GuarantorInterestAsk: l.GuarantorInterestAsk,
		PaybackLengthSecs:    l.PaybackLengthSecs,
		Expiry:               l.Expiry.UTC(),
		GuarantorInterest:    l.GuarantorInterest,
		GuarantorSlot:        l.GuarantorSlot().String(),
		State:                l.State.String(),
		StateOfLoan:          uint8(l.State),
		Escrowed:             l.Escrowed,
		Version:              l.Version,
		CreatedAt:            l.CreatedAt,
	}
	if l.Guarantor != nil {
		dto.Guarantor = *l.Guarantor
	}
	if l.Lender != nil {
		dto.Lender = *l.Lender
	}
	if l.PaybackDeadline != nil {
		d := l.PaybackDeadline.UTC()
		dto.PaybackDeadline = &d
	}
	return dto
}

func ToTransferDTOs(in []account.Transfer) []TransferDTO {
	out := make([]TransferDTO, 0, len(in))
	for _, t := range in {
		out = append(out, TransferDTO{
			TransferID: t.TransferID,
			LoanIndex:  t.LoanIndex,
			From:       t.FromID,
			To:         t.ToID,
			Amount:     t.Amount,
			Reason:     string(t.Reason),
			CreatedAt:  t.CreatedAt,
		})
	}
	return out
}
