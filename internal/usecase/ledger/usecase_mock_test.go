package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"loan-ledger/internal/domain/account"
	"loan-ledger/internal/domain/loan"
	"loan-ledger/internal/domain/uow"
	"loan-ledger/internal/testutil/accountmock"
	"loan-ledger/internal/testutil/loanmock"
	"loan-ledger/internal/testutil/uowmock"
	"loan-ledger/pkg/amount"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMutate_TranslatesRecordNotFound(t *testing.T) {
	loans := &loanmock.Repo{
		GetByIndexForUpdateFn: func(context.Context, uint64) (*loan.LoanRequest, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	tx := uowmock.Passthrough(uow.Repos{Loans: loans, Accounts: &accountmock.Repo{}})
	uc := NewUsecase(loans, &accountmock.Repo{}, tx, 0)

	_, err := uc.AcceptGuarantee(context.Background(), CallInput{Caller: "b", Index: 3})
	require.ErrorIs(t, err, loan.ErrNotFound)
}

func TestMutate_SaveErrorSurfaces(t *testing.T) {
	boom := errors.New("disk full")
	g := "g"
	req := &loan.LoanRequest{Borrower: "b", Guarantor: &g, LoanAmount: amount.FromUint64(1)}
	loans := &loanmock.Repo{
		GetByIndexForUpdateFn: func(context.Context, uint64) (*loan.LoanRequest, error) { return req, nil },
		SaveFn:                func(context.Context, *loan.LoanRequest) error { return boom },
	}
	tx := uowmock.Passthrough(uow.Repos{Loans: loans, Accounts: &accountmock.Repo{}})
	uc := NewUsecase(loans, &accountmock.Repo{}, tx, 0)

	var observed string
	uc.SetObserver(observerFunc(func(op, kind string) { observed = op + "/" + kind }))

	_, err := uc.AcceptGuarantee(context.Background(), CallInput{Caller: "b", Index: 0})
	require.ErrorIs(t, err, boom)
	require.Equal(t, opAccept+"/unknown", observed)
}

func TestRequestLoan_UsesValidityAndClock(t *testing.T) {
	now := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	var appended *loan.LoanRequest
	loans := &loanmock.Repo{
		AppendFn: func(_ context.Context, l *loan.LoanRequest) error {
			l.Index = 12
			appended = l
			return nil
		},
	}
	tx := uowmock.Passthrough(uow.Repos{Loans: loans, Accounts: &accountmock.Repo{}})
	uc := NewUsecase(loans, &accountmock.Repo{}, tx, 0)
	uc.SetNowFunc(func() time.Time { return now })

	dto, err := uc.RequestLoan(context.Background(), RequestLoanInput{Caller: "b", LoanAmount: amount.FromUint64(5)})
	require.NoError(t, err)
	require.Equal(t, uint64(12), dto.Index)
	require.True(t, appended.Expiry.Equal(now.Add(DefaultRequestValidity)))
	require.True(t, appended.StateUpdatedAt.Equal(now))
}

func TestLoanTransfers_RepoError(t *testing.T) {
	boom := errors.New("boom")
	loans := &loanmock.Repo{
		GetByIndexFn: func(context.Context, uint64) (*loan.LoanRequest, error) { return &loan.LoanRequest{}, nil },
	}
	accounts := &accountmock.Repo{
		TransfersByLoanFn: func(context.Context, uint64) ([]account.Transfer, error) { return nil, boom },
	}
	uc := NewUsecase(loans, accounts, uowmock.Passthrough(uow.Repos{Loans: loans, Accounts: accounts}), 0)
	_, err := uc.LoanTransfers(context.Background(), 0)
	require.ErrorIs(t, err, boom)
}

func TestMissingUnitOfWork(t *testing.T) {
	uc := NewUsecase(&loanmock.Repo{}, &accountmock.Repo{}, nil, 0)
	_, err := uc.RequestLoan(context.Background(), RequestLoanInput{Caller: "b", LoanAmount: amount.FromUint64(1)})
	require.Error(t, err)
	_, err = uc.RejectGuarantee(context.Background(), CallInput{Caller: "b"})
	require.Error(t, err)
}

type observerFunc func(op, kind string)

func (f observerFunc) ObserveOperation(op, kind string, _ time.Duration) { f(op, kind) }
func (observerFunc) ObserveTransfer(string)                              {}

func TestGrantAndPay_LockAccountsInIDOrder(t *testing.T) {
	g := "m"
	req := &loan.LoanRequest{
		Borrower:          "z",
		Guarantor:         &g,
		LoanAmount:        amount.FromUint64(5),
		GuarantorInterest: amount.FromUint64(1),
		Escrowed:          amount.FromUint64(6),
		State:             loan.StateGuaranteed,
	}
	var order []string
	accounts := &accountmock.Repo{
		GetForUpdateFn: func(_ context.Context, id string) (*account.Account, error) {
			order = append(order, id)
			return &account.Account{ID: id, Balance: amount.FromUint64(100)}, nil
		},
	}
	loans := &loanmock.Repo{
		GetByIndexForUpdateFn: func(context.Context, uint64) (*loan.LoanRequest, error) { return req, nil },
		SaveFn:                func(context.Context, *loan.LoanRequest) error { return nil },
	}
	uc := NewUsecase(loans, accounts, uowmock.Passthrough(uow.Repos{Loans: loans, Accounts: accounts}), 0)

	_, err := uc.GrantLoan(context.Background(), PaymentInput{Caller: "a", Index: 0, Value: amount.FromUint64(5)})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "z"}, order[:2])

	order = nil
	_, err = uc.PayLoan(context.Background(), PaymentInput{Caller: "z", Index: 0, Value: amount.FromUint64(7)})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "m", "z"}, order[:3])
}
