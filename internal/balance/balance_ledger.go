package balance

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	CacheKeyPrefix  = "balances:"
	DefaultCacheTTL = 10 * time.Minute
)

func CacheKey(employeeID uuid.UUID) string {
	return CacheKeyPrefix + employeeID.String()
}

// Ledger derives leave balances from the set of final-approved requests.
// Remaining is always entitlement minus taken; nothing is incremented.
type Ledger struct {
	repo   Repository
	rdb    *redis.Client
	ttl    time.Duration
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewLedger(repo Repository, rdb *redis.Client, ttl time.Duration, logger ...*zap.Logger) *Ledger {
	l := zap.L().Named("balance.ledger")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.ledger")
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Ledger{
		repo:   repo,
		rdb:    rdb,
		ttl:    ttl,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

// Recompute rewrites the taken and remaining rows of one employee inside
// tx. Calling it twice with no approval in between yields the same rows.
// The caller invalidates the cache once tx has committed.
func (l *Ledger) Recompute(ctx context.Context, tx *sql.Tx, employeeID uuid.UUID) (Balance, error) {
	qtx := l.repo.WithTx(tx)

	bal, err := compute(ctx, qtx, employeeID)
	if err != nil {
		return Balance{}, err
	}

	if err := qtx.UpsertTaken(ctx, LeaveTaken{
		EmployeeID:        employeeID,
		ApprovedSick:      bal.Taken.Sick,
		ApprovedPlanned:   bal.Taken.Planned,
		ApprovedEmergency: bal.Taken.Emergency,
	}); err != nil {
		return Balance{}, err
	}

	if err := qtx.UpsertRemaining(ctx, LeaveRemaining{
		EmployeeID:         employeeID,
		RemainingSick:      bal.Remaining.Sick,
		RemainingPlanned:   bal.Remaining.Planned,
		RemainingEmergency: bal.Remaining.Emergency,
	}); err != nil {
		return Balance{}, err
	}

	l.logger.Debug("balance recomputed",
		zap.String("employee_id", employeeID.String()),
		zap.Int("remaining_sick", bal.Remaining.Sick),
		zap.Int("remaining_planned", bal.Remaining.Planned),
		zap.Int("remaining_emergency", bal.Remaining.Emergency),
	)
	return bal, nil
}

// Current is the read path: same count as Recompute, no writes, cached.
func (l *Ledger) Current(ctx context.Context, employeeID uuid.UUID) (Balance, error) {
	key := CacheKey(employeeID)

	if l.rdb != nil {
		cached, err := l.rdb.Get(ctx, key).Bytes()
		if err == nil {
			var bal Balance
			if json.Unmarshal(cached, &bal) == nil {
				return bal, nil
			}
		} else if err != redis.Nil {
			l.logger.Warn("balance cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	v, err, _ := l.sf.Do(key, func() (interface{}, error) {
		bal, err := compute(ctx, l.repo, employeeID)
		if err != nil {
			return Balance{}, err
		}

		if l.rdb != nil {
			if payload, err := json.Marshal(bal); err == nil {
				if err := l.rdb.Set(ctx, key, payload, l.ttl).Err(); err != nil {
					l.logger.Warn("balance cache write failed", zap.String("key", key), zap.Error(err))
				}
			}
		}
		return bal, nil
	})
	if err != nil {
		return Balance{}, err
	}
	return v.(Balance), nil
}

// Invalidate drops the cached balance. Errors are logged, not returned.
func (l *Ledger) Invalidate(ctx context.Context, employeeID uuid.UUID) {
	if l.rdb == nil {
		return
	}
	key := CacheKey(employeeID)
	if err := l.rdb.Del(ctx, key).Err(); err != nil {
		l.logger.Error("failed to invalidate balance cache", zap.String("key", key), zap.Error(err))
	}
}

func compute(ctx context.Context, repo Repository, employeeID uuid.UUID) (Balance, error) {
	entitlement, err := repo.FindEntitlement(ctx, employeeID)
	if err != nil {
		return Balance{}, err
	}

	taken, err := repo.CountApproved(ctx, employeeID)
	if err != nil {
		return Balance{}, err
	}

	return Balance{
		EmployeeID:  employeeID,
		Entitlement: entitlement,
		Taken:       taken,
		Remaining:   entitlement.Minus(taken),
	}, nil
}
