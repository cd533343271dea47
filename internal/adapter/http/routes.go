package http

import (
	"time"

	"loan-ledger/internal/adapter/middleware"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

type Routes struct {
	Health   *Handler
	Loans    *LoanHandler
	Accounts *AccountHandler

	// Registry backs /metrics when set.
	Registry *prometheus.Registry
	// Redis enables idempotency on mutations when set.
	Redis          *redis.Client
	IdempotencyTTL time.Duration
}

// Register mounts the ledger API on e.
func Register(e *echo.Echo, r Routes) {
	e.Validator = NewValidator()

	e.GET("/health", r.Health.Health)
	if r.Registry != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(r.Registry, promhttp.HandlerOpts{})))
	}

	mw := []echo.MiddlewareFunc{middleware.CallerIdentity()}
	if r.Redis != nil {
		mw = append(mw, middleware.IdempotencyMiddleware(r.Redis, r.IdempotencyTTL))
	}

	loans := e.Group("/loans", mw...)
	loans.POST("", r.Loans.RequestLoan)
	loans.GET("", r.Loans.Count)
	loans.GET("/:index", r.Loans.GetLoan)
	loans.GET("/:index/transfers", r.Loans.Transfers)
	loans.POST("/:index/guarantee", r.Loans.Guarantee)
	loans.POST("/:index/accept", r.Loans.Accept)
	loans.POST("/:index/reject", r.Loans.Reject)
	loans.POST("/:index/grant", r.Loans.Grant)
	loans.POST("/:index/pay", r.Loans.Pay)
	loans.POST("/:index/forfeit", r.Loans.Forfeit)

	accounts := e.Group("/accounts", mw...)
	accounts.GET("/:account_id", r.Accounts.Balance)
	accounts.GET("/:account_id/transfers", r.Accounts.Transfers)
	accounts.POST("/:account_id/deposit", r.Accounts.Deposit)
	accounts.POST("/:account_id/withdraw", r.Accounts.Withdraw)
}
