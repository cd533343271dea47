package ledger

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"loan-ledger/internal/domain/account"
	"loan-ledger/internal/domain/loan"
	"loan-ledger/internal/domain/uow"
	"loan-ledger/internal/usecase/custody"
	"loan-ledger/pkg/amount"

	"gorm.io/gorm"
)

// DefaultRequestValidity is how long a new request stays guaranteeable.
const DefaultRequestValidity = 24 * time.Hour

// maxPaybackLengthSecs keeps grant time + payback length representable.
const maxPaybackLengthSecs = uint64(math.MaxInt64 / int64(time.Second))

const (
	opRequest   = "request_loan"
	opGuarantee = "guarantee_loan"
	opAccept    = "accept_guarantee"
	opReject    = "reject_guarantee"
	opGrant     = "grant_loan"
	opPay       = "pay_loan"
	opForfeit   = "missed_payback_date"
)

// Usecase is the loan ledger: it owns the lifecycle of every loan request and
// the escrow held on its behalf.
type Usecase struct {
	loans    loan.Repository
	accounts account.Repository
	uow      uow.UnitOfWork

	validity time.Duration
	nowFn    func() time.Time
	cache    ViewCache
	obs      Observer
	log      *slog.Logger
}

func NewUsecase(loans loan.Repository, accounts account.Repository, tx uow.UnitOfWork, validity time.Duration) *Usecase {
	if validity <= 0 {
		validity = DefaultRequestValidity
	}
	return &Usecase{
		loans:    loans,
		accounts: accounts,
		uow:      tx,
		validity: validity,
		nowFn:    func() time.Time { return time.Now().UTC() },
		cache:    nopCache{},
		obs:      nopObserver{},
		log:      slog.Default(),
	}
}

// SetNowFunc overrides the clock. Passing nil restores the wall clock.
func (u *Usecase) SetNowFunc(now func() time.Time) {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	u.nowFn = now
}

func (u *Usecase) SetCache(c ViewCache) {
	if c == nil {
		c = nopCache{}
	}
	u.cache = c
}

func (u *Usecase) SetObserver(o Observer) {
	if o == nil {
		o = nopObserver{}
	}
	u.obs = o
}

func (u *Usecase) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	u.log = l
}

func (u *Usecase) RequestLoan(ctx context.Context, in RequestLoanInput) (*LoanRequestDTO, error) {
	now := u.nowFn()
	start := time.Now()

	var dto *LoanRequestDTO
	err := func() error {
		if in.Caller == "" {
			return loan.ErrInvalidCaller
		}
		if in.LoanAmount.IsZero() {
			return loan.ErrInvalidLoanAmount
		}
		if in.PaybackLengthSecs > maxPaybackLengthSecs {
			return loan.ErrInvalidPaybackLength
		}
		if u.uow == nil {
			return errors.New("ledger: unit of work not configured")
		}
		return u.uow.WithinAppendTx(ctx, func(r uow.Repos) error {
			l := &loan.LoanRequest{
				Borrower:             in.Caller,
				LoanAmount:           in.LoanAmount,
				GuarantorInterestAsk: in.GuarantorInterestAsk,
				PaybackLengthSecs:    in.PaybackLengthSecs,
				Expiry:               now.Add(u.validity),
				State:                loan.StateRequested,
				StateUpdatedAt:       now,
				Version:              1,
			}
			if err := r.Loans.Append(ctx, l); err != nil {
				return err
			}
			dto = toDTO(l)
			return nil
		})
	}()
	u.observe(opRequest, err, start)
	if err != nil {
		return nil, err
	}
	u.cache.Set(ctx, dto)
	u.log.Info("loan requested", "op", opRequest, "index", dto.Index, "caller", in.Caller, "loan_amount", dto.LoanAmount.String())
	return dto, nil
}

func (u *Usecase) GuaranteeLoan(ctx context.Context, in GuaranteeInput) (*LoanRequestDTO, error) {
	return u.mutate(ctx, opGuarantee, in.Caller, in.Index, func(m *move, l *loan.LoanRequest, now time.Time) error {
		if in.Interest.Gt(l.GuarantorInterestAsk) {
			return loan.ErrInterestTooHigh
		}
		want, err := l.LoanAmount.Add(in.Interest)
		if err != nil || !in.Value.Eq(want) {
			return loan.ErrInvalidFunds
		}
		if l.IsBorrower(in.Caller) {
			return loan.ErrBorrowerCannotGuarantee
		}
		if l.GuarantorSlot() != loan.SlotEmpty || l.State != loan.StateRequested {
			return loan.ErrAlreadyGuaranteed
		}
		if now.After(l.Expiry) {
			return loan.ErrExpired
		}
		if err := m.collect(in.Caller, in.Value, account.ReasonGuaranteeEscrow); err != nil {
			return err
		}
		l.AttachGuarantor(in.Caller, in.Interest)
		return nil
	})
}

func (u *Usecase) AcceptGuarantee(ctx context.Context, in CallInput) (*LoanRequestDTO, error) {
	return u.mutate(ctx, opAccept, in.Caller, in.Index, func(_ *move, l *loan.LoanRequest, now time.Time) error {
		if !l.IsBorrower(in.Caller) {
			return loan.ErrNotBorrower
		}
		if l.GuarantorSlot() == loan.SlotEmpty {
			return loan.ErrNoGuarantee
		}
		if l.State != loan.StateRequested {
			return loan.ErrAlreadyAccepted
		}
		l.Accept(now)
		return nil
	})
}

func (u *Usecase) RejectGuarantee(ctx context.Context, in CallInput) (*LoanRequestDTO, error) {
	return u.mutate(ctx, opReject, in.Caller, in.Index, func(m *move, l *loan.LoanRequest, now time.Time) error {
		if !l.IsBorrower(in.Caller) {
			return loan.ErrNotBorrower
		}
		if l.GuarantorSlot() == loan.SlotEmpty {
			return loan.ErrNoGuarantee
		}
		if l.State >= loan.StateGranted {
			return loan.ErrLoanProvided
		}
		collateral, err := l.Collateral()
		if err != nil {
			return err
		}
		if err := m.pay(*l.Guarantor, collateral, account.ReasonGuaranteeRefund); err != nil {
			return err
		}
		l.DetachGuarantor(now)
		return nil
	})
}

func (u *Usecase) GrantLoan(ctx context.Context, in PaymentInput) (*LoanRequestDTO, error) {
	return u.mutate(ctx, opGrant, in.Caller, in.Index, func(m *move, l *loan.LoanRequest, now time.Time) error {
		if !in.Value.Eq(l.LoanAmount) {
			return loan.ErrInvalidFunds
		}
		if l.IsBorrower(in.Caller) || l.IsGuarantor(in.Caller) {
			return loan.ErrNotLender
		}
		if l.State != loan.StateGuaranteed {
			return loan.ErrNotGrantable
		}
		if err := m.lock(in.Caller, l.Borrower); err != nil {
			return err
		}
		if err := m.collect(in.Caller, in.Value, account.ReasonGrantEscrow); err != nil {
			return err
		}
		if err := m.pay(l.Borrower, l.LoanAmount, account.ReasonGrantPrincipal); err != nil {
			return err
		}
		l.Grant(in.Caller, now)
		return nil
	})
}

// PayLoan settles a granted loan. The guarantor gets their collateral back plus
// their interest, the lender gets principal plus the same interest. Anything
// paid above the minimum stays in escrow.
func (u *Usecase) PayLoan(ctx context.Context, in PaymentInput) (*LoanRequestDTO, error) {
	return u.mutate(ctx, opPay, in.Caller, in.Index, func(m *move, l *loan.LoanRequest, now time.Time) error {
		if !l.IsBorrower(in.Caller) {
			return loan.ErrNotBorrower
		}
		if l.State == loan.StateRepaid {
			return loan.ErrAlreadyPaid
		}
		if l.State != loan.StateGranted || l.Guarantor == nil || l.Lender == nil {
			return loan.ErrNotGranted
		}
		lenderPayout, err := l.Collateral()
		if err != nil {
			return err
		}
		if in.Value.Lt(lenderPayout) {
			return loan.ErrInsufficientPayment
		}
		guarantorPayout, err := lenderPayout.Add(l.GuarantorInterest)
		if err != nil {
			return err
		}
		if err := m.lock(in.Caller, *l.Guarantor, *l.Lender); err != nil {
			return err
		}
		if err := m.collect(in.Caller, in.Value, account.ReasonRepayEscrow); err != nil {
			return err
		}
		if err := m.pay(*l.Guarantor, guarantorPayout, account.ReasonRepayGuarantor); err != nil {
			return err
		}
		if err := m.pay(*l.Lender, lenderPayout, account.ReasonRepayLender); err != nil {
			return err
		}
		l.MarkRepaid(now)
		return nil
	})
}

// MissedPaybackDate lets the lender seize the guarantor's collateral once the
// payback deadline has passed. The request goes back to Requested with its
// original expiry.
func (u *Usecase) MissedPaybackDate(ctx context.Context, in CallInput) (*LoanRequestDTO, error) {
	return u.mutate(ctx, opForfeit, in.Caller, in.Index, func(m *move, l *loan.LoanRequest, now time.Time) error {
		if !l.IsLender(in.Caller) {
			return loan.ErrNotLender
		}
		if l.State == loan.StateRepaid {
			return loan.ErrAlreadyPaid
		}
		if l.PaybackDeadline == nil || now.Before(*l.PaybackDeadline) {
			return loan.ErrPaybackNotOver
		}
		collateral, err := l.Collateral()
		if err != nil {
			return err
		}
		if err := m.pay(in.Caller, collateral, account.ReasonForfeit); err != nil {
			return err
		}
		l.Forfeit(now)
		return nil
	})
}

func (u *Usecase) ViewLoanRequest(ctx context.Context, index uint64) (*LoanRequestDTO, error) {
	if dto, ok := u.cache.Get(ctx, index); ok {
		return dto, nil
	}
	l, err := u.loans.GetByIndex(ctx, index)
	if err != nil {
		return nil, translate(err)
	}
	dto := toDTO(l)
	u.cache.Set(ctx, dto)
	return dto, nil
}

func (u *Usecase) NumberOfLoanRequests(ctx context.Context) (uint64, error) {
	return u.loans.Count(ctx)
}

func (u *Usecase) LoanTransfers(ctx context.Context, index uint64) ([]TransferDTO, error) {
	if _, err := u.loans.GetByIndex(ctx, index); err != nil {
		return nil, translate(err)
	}
	ts, err := u.accounts.TransfersByLoan(ctx, index)
	if err != nil {
		return nil, err
	}
	return ToTransferDTOs(ts), nil
}

type mutation func(m *move, l *loan.LoanRequest, now time.Time) error

// mutate runs fn under the loan's lock and transaction. Any error, including a
// failed transfer, rolls back the whole call.
func (u *Usecase) mutate(ctx context.Context, op, caller string, index uint64, fn mutation) (*LoanRequestDTO, error) {
	now := u.nowFn()
	start := time.Now()

	var (
		dto     *LoanRequestDTO
		reasons []account.Reason
	)
	err := func() error {
		if caller == "" {
			return loan.ErrInvalidCaller
		}
		if u.uow == nil {
			return errors.New("ledger: unit of work not configured")
		}
		return u.uow.WithinLoanTx(ctx, index, func(r uow.Repos, l *loan.LoanRequest) error {
			m := &move{ctx: ctx, repo: r.Accounts, l: l}
			if err := fn(m, l, now); err != nil {
				return err
			}
			l.Version++
			if err := r.Loans.Save(ctx, l); err != nil {
				return err
			}
			dto = toDTO(l)
			reasons = m.reasons
			return nil
		})
	}()
	err = translate(err)
	u.observe(op, err, start)
	if err != nil {
		u.log.Debug("loan operation rejected", "op", op, "index", index, "caller", caller, "err", err)
		return nil, err
	}
	for _, r := range reasons {
		u.obs.ObserveTransfer(string(r))
	}
	// write-through: a reader filling the cache with an older row loses on Version
	u.cache.Set(ctx, dto)
	u.log.Info("loan updated", "op", op, "index", index, "caller", caller, "state", dto.State)
	return dto, nil
}

func (u *Usecase) observe(op string, err error, start time.Time) {
	kind := ""
	if err != nil {
		kind = loan.KindOf(err).String()
	}
	u.obs.ObserveOperation(op, kind, time.Since(start))
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return loan.ErrNotFound
	}
	return err
}

// move routes value between a participant's account and the request's escrow.
type move struct {
	ctx     context.Context
	repo    account.Repository
	l       *loan.LoanRequest
	reasons []account.Reason
}

// lock takes the account row locks up front in id order.
func (m *move) lock(ids ...string) error {
	return custody.LockInOrder(m.ctx, m.repo, ids...)
}

// collect takes v from the participant into escrow.
func (m *move) collect(from string, v amount.Amount, reason account.Reason) error {
	if v.IsZero() {
		return nil
	}
	held, err := m.l.Escrowed.Add(v)
	if err != nil {
		return err
	}
	if err := custody.Debit(m.ctx, m.repo, from, v); err != nil {
		return err
	}
	m.l.Escrowed = held
	return m.record(from, account.EscrowAccountID, v, reason)
}

// pay releases v from escrow to the participant.
func (m *move) pay(to string, v amount.Amount, reason account.Reason) error {
	if v.IsZero() {
		return nil
	}
	held, err := m.l.Escrowed.Sub(v)
	if err != nil {
		return loan.ErrEscrowShortfall
	}
	if err := custody.Credit(m.ctx, m.repo, to, v); err != nil {
		return err
	}
	m.l.Escrowed = held
	return m.record(account.EscrowAccountID, to, v, reason)
}

func (m *move) record(from, to string, v amount.Amount, reason account.Reason) error {
	idx := m.l.Index
	if _, err := custody.Record(m.ctx, m.repo, &idx, from, to, v, reason); err != nil {
		return err
	}
	m.reasons = append(m.reasons, reason)
	return nil
}
