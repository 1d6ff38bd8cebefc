package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/formgate/formgate/internal/logging"
)

// Result is the outcome of a rate-limit check. RetryAfter is in minutes and
// only meaningful when Allowed is false.
type Result struct {
	Allowed    bool
	Message    string
	RetryAfter int
}

// CounterStore is the minimal counter access the limiter needs. Counters
// are short-lived and purged by the store's own TTL mechanism.
type CounterStore interface {
	GetCount(ctx context.Context, key string) (int, error)
	SetCount(ctx context.Context, key string, count int, ttl time.Duration) error
}

// Limiter enforces per-IP hourly and daily submission limits backed by an
// external counter store shared across instances.
type Limiter struct {
	store  CounterStore
	hourly int
	daily  int

	// now is swappable for tests.
	now func() time.Time
}

func New(store CounterStore, hourly, daily int) *Limiter {
	return &Limiter{
		store:  store,
		hourly: hourly,
		daily:  daily,
		now:    time.Now,
	}
}

// Check decides whether a submission from ip may proceed and, when allowed,
// records it against both time buckets. Unknown IPs always pass: there is
// nothing to key a counter on. Store faults fail open; availability of the
// contact channel wins over strict limiting.
//
// The read-then-write sequence is deliberately not atomic. Two concurrent
// requests in the same bucket can both observe the same count, so limiting
// is approximate rather than a hard guarantee.
func (l *Limiter) Check(ctx context.Context, ip string) Result {
	logger := logging.GetLogger()

	if ip == "" || ip == "unknown" {
		logger.Warn("Unknown IP address, allowing request")
		return Result{Allowed: true}
	}

	now := l.now()
	hourKey := fmt.Sprintf("%s#%s", ip, now.Format("2006010215"))
	dayKey := fmt.Sprintf("%s#%s", ip, now.Format("20060102"))

	hourlyCount, err := l.store.GetCount(ctx, hourKey)
	if err != nil {
		logger.Error("Rate limit store error, failing open: %v", err)
		return Result{Allowed: true}
	}
	if hourlyCount >= l.hourly {
		logger.Warn("Hourly rate limit exceeded for %s", ip)
		return Result{
			Allowed:    false,
			Message:    fmt.Sprintf("Too many submissions this hour (%d/%d)", hourlyCount, l.hourly),
			RetryAfter: 60,
		}
	}

	dailyCount, err := l.store.GetCount(ctx, dayKey)
	if err != nil {
		logger.Error("Rate limit store error, failing open: %v", err)
		return Result{Allowed: true}
	}
	if dailyCount >= l.daily {
		logger.Warn("Daily rate limit exceeded for %s", ip)
		return Result{
			Allowed:    false,
			Message:    fmt.Sprintf("Daily submission limit reached (%d/%d)", dailyCount, l.daily),
			RetryAfter: minutesUntilMidnight(now),
		}
	}

	if err := l.store.SetCount(ctx, hourKey, hourlyCount+1, 2*time.Hour); err != nil {
		logger.Error("Failed to update hourly counter: %v", err)
	}
	if err := l.store.SetCount(ctx, dayKey, dailyCount+1, 48*time.Hour); err != nil {
		logger.Error("Failed to update daily counter: %v", err)
	}

	logger.Info("Rate limit passed for %s: hour=%d/%d, day=%d/%d",
		ip, hourlyCount+1, l.hourly, dailyCount+1, l.daily)
	return Result{Allowed: true}
}

// minutesUntilMidnight returns how many minutes remain until the next local
// midnight, used as the retry hint for daily-limit rejections.
func minutesUntilMidnight(now time.Time) int {
	year, month, day := now.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	return int(midnight.Sub(now).Minutes())
}
