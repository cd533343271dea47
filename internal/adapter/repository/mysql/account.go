package mysql

import (
	"context"

	accountDomain "loan-ledger/internal/domain/account"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AccountRepository struct{ db *gorm.DB }

func NewAccountRepository(db *gorm.DB) *AccountRepository { return &AccountRepository{db: db} }

func (r *AccountRepository) Get(ctx context.Context, id string) (*accountDomain.Account, error) {
	var out accountDomain.Account
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *AccountRepository) GetForUpdate(ctx context.Context, id string) (*accountDomain.Account, error) {
	// make sure the row exists so there is something to lock
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&accountDomain.Account{ID: id}).Error; err != nil {
		return nil, err
	}
	var out accountDomain.Account
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out)
	return &out, res.Error
}

func (r *AccountRepository) Save(ctx context.Context, a *accountDomain.Account) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *AccountRepository) RecordTransfer(ctx context.Context, t *accountDomain.Transfer) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *AccountRepository) TransfersByLoan(ctx context.Context, index uint64) ([]accountDomain.Transfer, error) {
	var out []accountDomain.Transfer
	err := r.db.WithContext(ctx).
		Where("loan_idx = ?", index).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

func (r *AccountRepository) TransfersByAccount(ctx context.Context, id string) ([]accountDomain.Transfer, error) {
	var out []accountDomain.Transfer
	err := r.db.WithContext(ctx).
		Where("from_id = ? OR to_id = ?", id, id).
		Order("id ASC").
		Find(&out).Error
	return out, err
}
