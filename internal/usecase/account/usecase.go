package account

import (
	"context"
	"errors"
	"log/slog"

	domain "loan-ledger/internal/domain/account"
	"loan-ledger/internal/domain/uow"
	"loan-ledger/internal/usecase/custody"
	"loan-ledger/internal/usecase/ledger"
	"loan-ledger/pkg/amount"

	"gorm.io/gorm"
)

type Usecase struct {
	repo domain.Repository
	uow  uow.UnitOfWork
}

func NewUsecase(r domain.Repository, tx uow.UnitOfWork) *Usecase { return &Usecase{repo: r, uow: tx} }

// Deposit brings value onto the ledger from outside.
func (u *Usecase) Deposit(ctx context.Context, in DepositInput) (*AccountDTO, error) {
	if in.Amount.IsZero() {
		return nil, domain.ErrInvalidAmount
	}
	if domain.IsReserved(in.AccountID) {
		return nil, domain.ErrReservedAccount
	}
	var dto *AccountDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := custody.Credit(ctx, r.Accounts, in.AccountID, in.Amount); err != nil {
			return err
		}
		if _, err := custody.Record(ctx, r.Accounts, nil, domain.ExternalAccountID, in.AccountID, in.Amount, domain.ReasonDeposit); err != nil {
			return err
		}
		var err error
		dto, err = u.snapshot(ctx, r.Accounts, in.AccountID)
		return err
	})
	if err != nil {
		return nil, err
	}
	slog.Info("account deposit", "account", in.AccountID, "amount", in.Amount.String())
	return dto, nil
}

// Withdraw sends value off the ledger. Only the owner may withdraw.
func (u *Usecase) Withdraw(ctx context.Context, in WithdrawInput) (*AccountDTO, error) {
	if in.Amount.IsZero() {
		return nil, domain.ErrInvalidAmount
	}
	if domain.IsReserved(in.AccountID) {
		return nil, domain.ErrReservedAccount
	}
	if in.Caller != in.AccountID {
		return nil, domain.ErrNotOwner
	}
	var dto *AccountDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := custody.Debit(ctx, r.Accounts, in.AccountID, in.Amount); err != nil {
			return err
		}
		if _, err := custody.Record(ctx, r.Accounts, nil, in.AccountID, domain.ExternalAccountID, in.Amount, domain.ReasonWithdraw); err != nil {
			return err
		}
		var err error
		dto, err = u.snapshot(ctx, r.Accounts, in.AccountID)
		return err
	})
	if err != nil {
		return nil, err
	}
	slog.Info("account withdrawal", "account", in.AccountID, "amount", in.Amount.String())
	return dto, nil
}

// Balance reports zero for accounts that never held value.
func (u *Usecase) Balance(ctx context.Context, id string) (*AccountDTO, error) {
	a, err := u.repo.Get(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &AccountDTO{AccountID: id, Balance: amount.Zero}, nil
	}
	if err != nil {
		return nil, err
	}
	return &AccountDTO{AccountID: a.ID, Balance: a.Balance, UpdatedAt: a.UpdatedAt}, nil
}

func (u *Usecase) Transfers(ctx context.Context, id string) ([]ledger.TransferDTO, error) {
	ts, err := u.repo.TransfersByAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	return ledger.ToTransferDTOs(ts), nil
}

func (u *Usecase) snapshot(ctx context.Context, r domain.Repository, id string) (*AccountDTO, error) {
	a, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &AccountDTO{AccountID: a.ID, Balance: a.Balance, UpdatedAt: a.UpdatedAt}, nil
}
