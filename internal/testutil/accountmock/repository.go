package accountmock

import (
	"context"

	domain "loan-ledger/internal/domain/account"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies account.Repository.
// Unset lookups return context.Canceled; unset writes succeed.
type Repo struct {
	GetForUpdateFn       func(ctx context.Context, id string) (*domain.Account, error)
	GetFn                func(ctx context.Context, id string) (*domain.Account, error)
	SaveFn               func(ctx context.Context, a *domain.Account) error
	RecordTransferFn     func(ctx context.Context, t *domain.Transfer) error
	TransfersByLoanFn    func(ctx context.Context, index uint64) ([]domain.Transfer, error)
	TransfersByAccountFn func(ctx context.Context, id string) ([]domain.Transfer, error)
}

func (m *Repo) GetForUpdate(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetForUpdateFn != nil {
		return m.GetForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) Get(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, a *domain.Account) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}

func (m *Repo) RecordTransfer(ctx context.Context, t *domain.Transfer) error {
	if m.RecordTransferFn != nil {
		return m.RecordTransferFn(ctx, t)
	}
	return nil
}

func (m *Repo) TransfersByLoan(ctx context.Context, index uint64) ([]domain.Transfer, error) {
	if m.TransfersByLoanFn != nil {
		return m.TransfersByLoanFn(ctx, index)
	}
	return nil, context.Canceled
}

func (m *Repo) TransfersByAccount(ctx context.Context, id string) ([]domain.Transfer, error) {
	if m.TransfersByAccountFn != nil {
		return m.TransfersByAccountFn(ctx, id)
	}
	return nil, context.Canceled
}
