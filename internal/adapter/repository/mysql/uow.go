package mysql

import (
	"context"
	"strconv"

	"loan-ledger/internal/domain/loan"
	"loan-ledger/internal/domain/uow"
	"loan-ledger/pkg/keylock"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const appendLockKey = "loan:append"

type GormUoW struct {
	db    *gorm.DB
	locks *keylock.Locker
}

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db, locks: keylock.New()} }

func (u *GormUoW) repos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Loans:    &LoanRepository{db: tx},
		Accounts: &AccountRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(u.repos(tx))
	})
}

// WithinAppendTx serializes appends in-process with the keylock and across
// processes with the loan_append_locks row.
func (u *GormUoW) WithinAppendTx(ctx context.Context, fn func(r uow.Repos) error) error {
	unlock := u.locks.Lock(appendLockKey)
	defer unlock()
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockAppends(tx); err != nil {
			return err
		}
		return fn(u.repos(tx))
	})
}

func lockAppends(tx *gorm.DB) error {
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&loan.AppendLock{Name: appendLockKey}).Error; err != nil {
		return err
	}
	var row loan.AppendLock
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("name = ?", appendLockKey).
		First(&row).Error
}

func (u *GormUoW) WithinLoanTx(ctx context.Context, index uint64, fn func(r uow.Repos, l *loan.LoanRequest) error) error {
	unlock := u.locks.Lock("loan:" + strconv.FormatUint(index, 10))
	defer unlock()
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := u.repos(tx)
		// lock the loan row up-front to prevent races across processes
		l, err := r.Loans.GetByIndexForUpdate(ctx, index)
		if err != nil {
			return err
		}
		return fn(r, l)
	})
}
