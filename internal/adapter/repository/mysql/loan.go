package mysql

import (
	"context"

	loanDomain "loan-ledger/internal/domain/loan"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Append(ctx context.Context, l *loanDomain.LoanRequest) error {
	n, err := r.Count(ctx)
	if err != nil {
		return err
	}
	l.Index = n
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.LoanRequest) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) Count(ctx context.Context) (uint64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&loanDomain.LoanRequest{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return uint64(n), nil
}

func (r *LoanRepository) GetByIndex(ctx context.Context, index uint64) (*loanDomain.LoanRequest, error) {
	var out loanDomain.LoanRequest
	res := r.db.WithContext(ctx).Where("idx = ?", index).First(&out)
	return &out, res.Error
}

// GetByIndexForUpdate issues SELECT ... FOR UPDATE; SQLite ignores the locking clause.
func (r *LoanRepository) GetByIndexForUpdate(ctx context.Context, index uint64) (*loanDomain.LoanRequest, error) {
	var out loanDomain.LoanRequest
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("idx = ?", index).
		First(&out)
	return &out, res.Error
}
