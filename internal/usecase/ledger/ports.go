package ledger

import (
	"context"
	"time"
)

// ViewCache caches read-only loan views. Implementations must tolerate misses
// and must never replace an entry with one of a lower Version.
type ViewCache interface {
	Get(ctx context.Context, index uint64) (*LoanRequestDTO, bool)
	Set(ctx context.Context, dto *LoanRequestDTO)
}

// Observer receives operation outcomes; kind is "" on success.
type Observer interface {
	ObserveOperation(op, kind string, elapsed time.Duration)
	ObserveTransfer(reason string)
}

type nopCache struct{}

func (nopCache) Get(context.Context, uint64) (*LoanRequestDTO, bool) { return nil, false }
func (nopCache) Set(context.Context, *LoanRequestDTO)                {}

type nopObserver struct{}

func (nopObserver) ObserveOperation(string, string, time.Duration) {}
func (nopObserver) ObserveTransfer(string)                         {}
