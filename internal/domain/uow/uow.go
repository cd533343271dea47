package uow

import (
	"context"

	"loan-ledger/internal/domain/account"
	"loan-ledger/internal/domain/loan"
)

type Repos struct {
	Loans    loan.Repository
	Accounts account.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// serializes with every other append; used to assign dense loan indices
	WithinAppendTx(ctx context.Context, fn func(r Repos) error) error
	// locks the loan (in-process and row lock) first, then passes it in
	WithinLoanTx(ctx context.Context, index uint64, fn func(r Repos, l *loan.LoanRequest) error) error
}
