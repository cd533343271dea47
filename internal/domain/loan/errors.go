package loan

import "errors"

type Kind uint8

const (
	KindValidation Kind = iota + 1
	KindAuthorization
	KindStateConflict
	KindTemporal
	KindNotFound
	KindCustody
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthorization:
		return "authorization"
	case KindStateConflict:
		return "state_conflict"
	case KindTemporal:
		return "temporal"
	case KindNotFound:
		return "not_found"
	case KindCustody:
		return "custody"
	default:
		return "unknown"
	}
}

// RuleError is a rejection raised before the ledger changes. Reason strings are
// part of the public contract and must not be reworded.
type RuleError struct {
	Kind   Kind
	Reason string
}

func (e *RuleError) Error() string { return e.Reason }

func rule(k Kind, reason string) *RuleError { return &RuleError{Kind: k, Reason: reason} }

var (
	ErrInvalidLoanAmount       = rule(KindValidation, "Invalid Loan Amount")
	ErrInvalidPaybackLength    = rule(KindValidation, "Invalid Payback Length")
	ErrInvalidCaller           = rule(KindValidation, "Invalid caller")
	ErrInterestTooHigh         = rule(KindValidation, "Guarantor Interest too high")
	ErrInvalidFunds            = rule(KindValidation, "Invalid Funds Transferred! Funds transffered is not equal to loan request")
	ErrInsufficientPayment     = rule(KindValidation, "Insufficient funds transferred!")
	ErrBorrowerCannotGuarantee = rule(KindAuthorization, "Invalid Guarantee! Borrower cannot guarantee")
	ErrNotLender               = rule(KindAuthorization, "You are not the lender!")
	ErrNotBorrower             = rule(KindAuthorization, "Needs to be a borrower")
	ErrAlreadyGuaranteed       = rule(KindStateConflict, "Loan already being guaranteed!")
	ErrNoGuarantee             = rule(KindStateConflict, "No Guarantee present")
	ErrAlreadyAccepted         = rule(KindStateConflict, "Guarantee already accepted")
	ErrLoanProvided            = rule(KindStateConflict, "Loan Provided. Cannot reject guarantee")
	ErrNotGrantable            = rule(KindStateConflict, "The guarantee has either not yet been accepted, or a loan has already been provided!")
	ErrNotGranted              = rule(KindStateConflict, "Loan not yet granted")
	ErrAlreadyPaid             = rule(KindStateConflict, "Loan already paid!")
	ErrPaybackNotOver          = rule(KindTemporal, "Payback period not over yet!")
	ErrExpired                 = rule(KindTemporal, "Loan Expired")
	ErrNotFound                = rule(KindNotFound, "loan request not found")
	ErrEscrowShortfall         = rule(KindCustody, "Insufficient escrow to settle loan")
)

// KindOf returns the rule kind of err, or 0 for infrastructure errors.
func KindOf(err error) Kind {
	var re *RuleError
	if errors.As(err, &re) {
		return re.Kind
	}
	return 0
}
