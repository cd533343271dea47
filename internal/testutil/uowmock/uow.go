package uowmock

import (
	"context"
	"errors"

	"loan-ledger/internal/domain/loan"
	"loan-ledger/internal/domain/uow"
)

var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn       func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinAppendTxFn func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinLoanTxFn   func(ctx context.Context, index uint64, fn func(r uow.Repos, l *loan.LoanRequest) error) error
}

// Passthrough returns a UoW that runs every body directly against repos.
// WithinLoanTx loads the request through repos.Loans.GetByIndexForUpdate.
func Passthrough(repos uow.Repos) *UoW {
	return &UoW{
		WithinTxFn:       func(_ context.Context, fn func(uow.Repos) error) error { return fn(repos) },
		WithinAppendTxFn: func(_ context.Context, fn func(uow.Repos) error) error { return fn(repos) },
		WithinLoanTxFn: func(ctx context.Context, index uint64, fn func(uow.Repos, *loan.LoanRequest) error) error {
			l, err := repos.Loans.GetByIndexForUpdate(ctx, index)
			if err != nil {
				return err
			}
			return fn(repos, l)
		},
	}
}

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinAppendTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinAppendTxFn != nil {
		return m.WithinAppendTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinLoanTx(ctx context.Context, index uint64, fn func(r uow.Repos, l *loan.LoanRequest) error) error {
	if m.WithinLoanTxFn != nil {
		return m.WithinLoanTxFn(ctx, index, fn)
	}
	return errUnimplemented
}
