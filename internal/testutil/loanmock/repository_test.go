package loanmock

import (
	"context"
	"errors"
	"testing"

	domain "loan-ledger/internal/domain/loan"
)

func TestRepo_Defaults(t *testing.T) {
	ctx := context.Background()
	m := &Repo{}

	if err := m.Append(ctx, &domain.LoanRequest{}); err != nil {
		t.Fatalf("Append default: %v", err)
	}
	if err := m.Save(ctx, &domain.LoanRequest{}); err != nil {
		t.Fatalf("Save default: %v", err)
	}
	if n, err := m.Count(ctx); err != nil || n != 0 {
		t.Fatalf("Count default: n=%d err=%v", n, err)
	}
	if got, err := m.GetByIndex(ctx, 1); err != context.Canceled || got != nil {
		t.Fatalf("GetByIndex default: got=%v err=%v", got, err)
	}
	if got, err := m.GetByIndexForUpdate(ctx, 1); err != context.Canceled || got != nil {
		t.Fatalf("GetByIndexForUpdate default: got=%v err=%v", got, err)
	}
}

func TestRepo_ForwardsToFuncs(t *testing.T) {
	ctx := context.Background()
	want := &domain.LoanRequest{Index: 7}
	boom := errors.New("boom")

	var appended, saved *domain.LoanRequest
	m := &Repo{
		AppendFn: func(_ context.Context, l *domain.LoanRequest) error { appended = l; return boom },
		SaveFn:   func(_ context.Context, l *domain.LoanRequest) error { saved = l; return nil },
		CountFn:  func(context.Context) (uint64, error) { return 3, nil },
		GetByIndexFn: func(_ context.Context, index uint64) (*domain.LoanRequest, error) {
			if index != 7 {
				t.Fatalf("index = %d", index)
			}
			return want, nil
		},
		GetByIndexForUpdateFn: func(_ context.Context, index uint64) (*domain.LoanRequest, error) {
			return want, nil
		},
	}

	if err := m.Append(ctx, want); !errors.Is(err, boom) || appended != want {
		t.Fatalf("Append: err=%v appended=%v", err, appended)
	}
	if err := m.Save(ctx, want); err != nil || saved != want {
		t.Fatalf("Save: err=%v saved=%v", err, saved)
	}
	if n, _ := m.Count(ctx); n != 3 {
		t.Fatalf("Count = %d", n)
	}
	if got, _ := m.GetByIndex(ctx, 7); got != want {
		t.Fatalf("GetByIndex = %v", got)
	}
	if got, _ := m.GetByIndexForUpdate(ctx, 7); got != want {
		t.Fatalf("GetByIndexForUpdate = %v", got)
	}
}
