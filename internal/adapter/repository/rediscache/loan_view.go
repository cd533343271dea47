package rediscache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"loan-ledger/internal/usecase/ledger"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ledger:loan:"

// setIfNewer stores the view in a hash {v: version, d: json} unless the cached
// version is already at least as new.
var setIfNewer = redis.NewScript(`
local cur = redis.call('HGET', KEYS[1], 'v')
if cur and tonumber(cur) >= tonumber(ARGV[1]) then
  return 0
end
redis.call('HSET', KEYS[1], 'v', ARGV[1], 'd', ARGV[2])
if tonumber(ARGV[3]) > 0 then
  redis.call('PEXPIRE', KEYS[1], ARGV[3])
end
return 1
`)

// LoanViewCache implements ledger.ViewCache on Redis. Redis failures degrade to
// cache misses.
type LoanViewCache struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ ledger.ViewCache = (*LoanViewCache)(nil)

func NewLoanViewCache(rdb *redis.Client, ttl time.Duration) *LoanViewCache {
	return &LoanViewCache{rdb: rdb, ttl: ttl}
}

func key(index uint64) string { return keyPrefix + strconv.FormatUint(index, 10) }

func (c *LoanViewCache) Get(ctx context.Context, index uint64) (*ledger.LoanRequestDTO, bool) {
	b, err := c.rdb.HGet(ctx, key(index), "d").Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("loan view cache get failed", "index", index, "err", err)
		}
		return nil, false
	}
	var dto ledger.LoanRequestDTO
	if err := json.Unmarshal(b, &dto); err != nil {
		return nil, false
	}
	return &dto, true
}

// Set stores dto unless a newer version is cached. If the write fails the key
// is dropped so a stale entry is not served for the rest of its TTL.
func (c *LoanViewCache) Set(ctx context.Context, dto *ledger.LoanRequestDTO) {
	if dto == nil {
		return
	}
	b, err := json.Marshal(dto)
	if err != nil {
		return
	}
	k := key(dto.Index)
	err = setIfNewer.Run(ctx, c.rdb, []string{k}, dto.Version, b, c.ttl.Milliseconds()).Err()
	if err == nil || err == redis.Nil {
		return
	}
	slog.Warn("loan view cache set failed", "index", dto.Index, "err", err)
	if err := c.rdb.Del(ctx, k).Err(); err != nil {
		slog.Warn("loan view cache drop failed", "index", dto.Index, "err", err)
	}
}
