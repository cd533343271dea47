package custody

import (
	"context"
	"errors"
	"testing"

	"loan-ledger/internal/domain/account"
	"loan-ledger/internal/testutil/accountmock"
	"loan-ledger/pkg/amount"

	"github.com/stretchr/testify/require"
)

func memRepo(balances map[string]uint64) (*accountmock.Repo, *[]*account.Transfer) {
	accs := map[string]*account.Account{}
	for k, v := range balances {
		accs[k] = &account.Account{ID: k, Balance: amount.FromUint64(v)}
	}
	var journal []*account.Transfer
	return &accountmock.Repo{
		GetForUpdateFn: func(_ context.Context, id string) (*account.Account, error) {
			if a, ok := accs[id]; ok {
				cp := *a
				return &cp, nil
			}
			return &account.Account{ID: id}, nil
		},
		SaveFn: func(_ context.Context, a *account.Account) error {
			cp := *a
			accs[a.ID] = &cp
			return nil
		},
		GetFn: func(_ context.Context, id string) (*account.Account, error) { return accs[id], nil },
		RecordTransferFn: func(_ context.Context, t *account.Transfer) error {
			journal = append(journal, t)
			return nil
		},
	}, &journal
}

func TestDebitCredit(t *testing.T) {
	ctx := context.Background()
	repo, _ := memRepo(map[string]uint64{"a": 10})

	require.NoError(t, Debit(ctx, repo, "a", amount.FromUint64(4)))
	require.NoError(t, Credit(ctx, repo, "b", amount.FromUint64(4)))

	a, _ := repo.Get(ctx, "a")
	b, _ := repo.Get(ctx, "b")
	require.True(t, a.Balance.Eq(amount.FromUint64(6)))
	require.True(t, b.Balance.Eq(amount.FromUint64(4)))

	err := Debit(ctx, repo, "a", amount.FromUint64(7))
	require.ErrorIs(t, err, account.ErrInsufficientBalance)
	a, _ = repo.Get(ctx, "a")
	require.True(t, a.Balance.Eq(amount.FromUint64(6)))
}

func TestCredit_Overflow(t *testing.T) {
	max := amount.MustParse("115792089237316195423570985008687907853269984665640564039457584007913129639935")
	repo, _ := memRepo(nil)
	ctx := context.Background()
	require.NoError(t, Credit(ctx, repo, "a", max))
	err := Credit(ctx, repo, "a", amount.FromUint64(1))
	require.ErrorIs(t, err, amount.ErrOverflow)
}

func TestLockErrorIsWrapped(t *testing.T) {
	boom := errors.New("boom")
	repo := &accountmock.Repo{
		GetForUpdateFn: func(context.Context, string) (*account.Account, error) { return nil, boom },
	}
	err := Debit(context.Background(), repo, "a", amount.FromUint64(1))
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "lock account a")
}

func TestRecord(t *testing.T) {
	repo, journal := memRepo(nil)
	idx := uint64(5)
	tr, err := Record(context.Background(), repo, &idx, "a", account.EscrowAccountID, amount.FromUint64(3), account.ReasonGrantEscrow)
	require.NoError(t, err)
	require.Len(t, tr.TransferID, 36)
	require.Len(t, *journal, 1)
	require.Equal(t, account.ReasonGrantEscrow, (*journal)[0].Reason)
	require.Equal(t, idx, *(*journal)[0].LoanIndex)

	boom := errors.New("boom")
	repo.RecordTransferFn = func(context.Context, *account.Transfer) error { return boom }
	_, err = Record(context.Background(), repo, nil, "a", "b", amount.FromUint64(1), account.ReasonDeposit)
	require.ErrorIs(t, err, boom)
}

func TestLockInOrder(t *testing.T) {
	ctx := context.Background()
	var order []string
	repo := &accountmock.Repo{
		GetForUpdateFn: func(_ context.Context, id string) (*account.Account, error) {
			order = append(order, id)
			return &account.Account{ID: id}, nil
		},
	}

	require.NoError(t, LockInOrder(ctx, repo, "c", "a", "b", "a"))
	require.Equal(t, []string{"a", "b", "c"}, order)

	boom := errors.New("lock wait timeout")
	repo.GetForUpdateFn = func(context.Context, string) (*account.Account, error) { return nil, boom }
	require.ErrorIs(t, LockInOrder(ctx, repo, "a"), boom)
}
