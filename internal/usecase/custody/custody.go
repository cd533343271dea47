// Package custody moves value between custodial accounts and journals every leg.
package custody

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"loan-ledger/internal/domain/account"
	"loan-ledger/pkg/amount"

	"github.com/google/uuid"
)

// LockInOrder takes the row locks of every account an operation will touch,
// in ascending id order, so crossing transfers cannot deadlock.
func LockInOrder(ctx context.Context, repo account.Repository, ids ...string) error {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	for _, id := range slices.Compact(sorted) {
		if _, err := repo.GetForUpdate(ctx, id); err != nil {
			return fmt.Errorf("lock account %s: %w", id, err)
		}
	}
	return nil
}

// Debit removes v from the account, failing if the balance cannot cover it.
func Debit(ctx context.Context, repo account.Repository, id string, v amount.Amount) error {
	acc, err := repo.GetForUpdate(ctx, id)
	if err != nil {
		return fmt.Errorf("lock account %s: %w", id, err)
	}
	next, err := acc.Balance.Sub(v)
	if errors.Is(err, amount.ErrUnderflow) {
		return account.ErrInsufficientBalance
	}
	if err != nil {
		return err
	}
	acc.Balance = next
	return repo.Save(ctx, acc)
}

func Credit(ctx context.Context, repo account.Repository, id string, v amount.Amount) error {
	acc, err := repo.GetForUpdate(ctx, id)
	if err != nil {
		return fmt.Errorf("lock account %s: %w", id, err)
	}
	next, err := acc.Balance.Add(v)
	if err != nil {
		return fmt.Errorf("credit account %s: %w", id, err)
	}
	acc.Balance = next
	return repo.Save(ctx, acc)
}

// Record appends one journal entry. loanIndex is nil for deposits and withdrawals.
func Record(ctx context.Context, repo account.Repository, loanIndex *uint64, from, to string, v amount.Amount, reason account.Reason) (*account.Transfer, error) {
	t := &account.Transfer{
		TransferID: uuid.NewString(),
		LoanIndex:  loanIndex,
		FromID:     from,
		ToID:       to,
		Amount:     v,
		Reason:     reason,
	}
	if err := repo.RecordTransfer(ctx, t); err != nil {
		return nil, fmt.Errorf("record transfer: %w", err)
	}
	return t, nil
}
