package loan

import (
	"time"

	"loan-ledger/pkg/amount"
)

type State uint8

const (
	StateRequested State = iota
	StateGuaranteed
	StateGranted
	StateRepaid
)

func (s State) String() string {
	switch s {
	case StateRequested:
		return "requested"
	case StateGuaranteed:
		return "guaranteed"
	case StateGranted:
		return "granted"
	case StateRepaid:
		return "repaid"
	default:
		return "unknown"
	}
}

// Slot describes the guarantor slot independently of State.
type Slot uint8

const (
	SlotEmpty Slot = iota
	SlotPending
	SlotAccepted
)

func (s Slot) String() string {
	switch s {
	case SlotPending:
		return "pending"
	case SlotAccepted:
		return "accepted"
	default:
		return "empty"
	}
}

// Table: loan_requests. Rows are never deleted; Index is the public identifier.
type LoanRequest struct {
	ID                   uint64        `gorm:"primaryKey;column:id" json:"-"`
	Index                uint64        `gorm:"column:idx;not null;uniqueIndex:ux_loan_requests_idx" json:"index"`
	Borrower             string        `gorm:"column:borrower;size:32;not null;index" json:"borrower"`
	LoanAmount           amount.Amount `gorm:"column:loan_amount;type:varchar(78);not null" json:"loan_amount"`
	GuarantorInterestAsk amount.Amount `gorm:"column:guarantor_interest_ask;type:varchar(78);not null" json:"guarantor_interest_ask"`
	PaybackLengthSecs    uint64        `gorm:"column:payback_length_secs;not null" json:"payback_length_secs"`
	Expiry               time.Time     `gorm:"column:expiry;not null" json:"expiry"`
	Guarantor            *string       `gorm:"column:guarantor;size:32" json:"guarantor"`
	GuarantorInterest    amount.Amount `gorm:"column:guarantor_interest;type:varchar(78);not null" json:"guarantor_interest"`
	Lender               *string       `gorm:"column:lender;size:32" json:"lender"`
	State                State         `gorm:"column:state;not null;default:0" json:"state"`
	PaybackDeadline      *time.Time    `gorm:"column:payback_deadline" json:"payback_deadline"`
	// value the ledger holds in escrow on behalf of this request
	Escrowed       amount.Amount `gorm:"column:escrowed;type:varchar(78);not null" json:"escrowed"`
	StateUpdatedAt time.Time     `gorm:"column:state_updated_at" json:"state_updated_at"`
	// bumped on every committed mutation; cached views never go backwards
	Version   uint64    `gorm:"column:version;not null;default:1" json:"version"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (LoanRequest) TableName() string { return "loan_requests" }

// Table: loan_append_locks. The row is locked FOR UPDATE while a new index is
// assigned, so appends from separate processes serialize in the database.
type AppendLock struct {
	Name string `gorm:"column:name;primaryKey;size:32"`
}

func (AppendLock) TableName() string { return "loan_append_locks" }

func (l *LoanRequest) GuarantorSlot() Slot {
	if l.Guarantor == nil {
		return SlotEmpty
	}
	if l.State == StateRequested {
		return SlotPending
	}
	return SlotAccepted
}

func (l *LoanRequest) IsBorrower(caller string) bool { return l.Borrower == caller }

func (l *LoanRequest) IsGuarantor(caller string) bool {
	return l.Guarantor != nil && *l.Guarantor == caller
}

func (l *LoanRequest) IsLender(caller string) bool {
	return l.Lender != nil && *l.Lender == caller
}

// Collateral is what a guarantor escrows: principal plus their interest.
func (l *LoanRequest) Collateral() (amount.Amount, error) {
	return l.LoanAmount.Add(l.GuarantorInterest)
}

func (l *LoanRequest) clearGuarantor() {
	l.Guarantor = nil
	l.GuarantorInterest = amount.Zero
}

// AttachGuarantor fills the slot; State stays Requested until accepted.
func (l *LoanRequest) AttachGuarantor(guarantor string, interest amount.Amount) {
	g := guarantor
	l.Guarantor = &g
	l.GuarantorInterest = interest
}

// DetachGuarantor empties the slot and returns the request to Requested.
func (l *LoanRequest) DetachGuarantor(now time.Time) {
	l.clearGuarantor()
	l.setState(StateRequested, now)
}

func (l *LoanRequest) Accept(now time.Time) { l.setState(StateGuaranteed, now) }

func (l *LoanRequest) Grant(lender string, now time.Time) {
	who := lender
	deadline := now.Add(time.Duration(l.PaybackLengthSecs) * time.Second)
	l.Lender = &who
	l.PaybackDeadline = &deadline
	l.setState(StateGranted, now)
}

func (l *LoanRequest) MarkRepaid(now time.Time) { l.setState(StateRepaid, now) }

// Forfeit clears guarantor and lender after the collateral was seized. Expiry is
// left untouched.
func (l *LoanRequest) Forfeit(now time.Time) {
	l.clearGuarantor()
	l.Lender = nil
	l.PaybackDeadline = nil
	l.setState(StateRequested, now)
}

func (l *LoanRequest) setState(s State, now time.Time) {
	l.State = s
	l.StateUpdatedAt = now
}
