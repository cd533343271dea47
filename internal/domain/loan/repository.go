package loan

import "context"

type Repository interface {
	// Append assigns the next index and inserts l. Callers serialize appends.
	Append(ctx context.Context, l *LoanRequest) error
	GetByIndex(ctx context.Context, index uint64) (*LoanRequest, error)
	// GetByIndexForUpdate locks the row for the rest of the transaction.
	GetByIndexForUpdate(ctx context.Context, index uint64) (*LoanRequest, error)
	Count(ctx context.Context) (uint64, error)
	Save(ctx context.Context, l *LoanRequest) error
}
