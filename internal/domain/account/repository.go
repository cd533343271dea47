package account

import "context"

type Repository interface {
	// GetForUpdate locks the account row, creating a zero-balance row if missing.
	GetForUpdate(ctx context.Context, id string) (*Account, error)
	// Get returns gorm.ErrRecordNotFound for unknown accounts.
	Get(ctx context.Context, id string) (*Account, error)
	Save(ctx context.Context, a *Account) error

	RecordTransfer(ctx context.Context, t *Transfer) error
	TransfersByLoan(ctx context.Context, index uint64) ([]Transfer, error)
	TransfersByAccount(ctx context.Context, id string) ([]Transfer, error)
}
