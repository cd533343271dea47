package loanmock

import (
	"context"

	domain "loan-ledger/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies loan.Repository.
// Unset lookups return context.Canceled; unset writes succeed.
type Repo struct {
	AppendFn              func(ctx context.Context, l *domain.LoanRequest) error
	GetByIndexFn          func(ctx context.Context, index uint64) (*domain.LoanRequest, error)
	GetByIndexForUpdateFn func(ctx context.Context, index uint64) (*domain.LoanRequest, error)
	CountFn               func(ctx context.Context) (uint64, error)
	SaveFn                func(ctx context.Context, l *domain.LoanRequest) error
}

func (m *Repo) Append(ctx context.Context, l *domain.LoanRequest) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByIndex(ctx context.Context, index uint64) (*domain.LoanRequest, error) {
	if m.GetByIndexFn != nil {
		return m.GetByIndexFn(ctx, index)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIndexForUpdate(ctx context.Context, index uint64) (*domain.LoanRequest, error) {
	if m.GetByIndexForUpdateFn != nil {
		return m.GetByIndexForUpdateFn(ctx, index)
	}
	return nil, context.Canceled
}

func (m *Repo) Count(ctx context.Context) (uint64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return 0, nil
}

func (m *Repo) Save(ctx context.Context, l *domain.LoanRequest) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}
