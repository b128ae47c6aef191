// Package ratelimit keeps sliding per-minute and per-day request counters
// in a kvstore.Store. Timestamps older than their window are dropped on
// every read, so the stored document never grows past the caps.
package ratelimit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/katalvlaran/stepwise/kvstore"
)

// Default caps and the key the counters are stored under.
const (
	DefaultPerMinute = 14
	DefaultPerDay    = 1400
	DefaultKey       = "rate_limits"
)

// Window lengths.
const (
	Minute = time.Minute
	Day    = 24 * time.Hour
)

var (
	// ErrLimited is returned by Allow when either cap is reached.
	ErrLimited = errors.New("ratelimit: limit reached")

	// ErrOptionViolation reports an invalid Option.
	ErrOptionViolation = errors.New("ratelimit: invalid option")
)

// Info is a snapshot of both windows.
type Info struct {
	RequestsPerMinute int           `json:"requestsPerMinute"`
	RequestsPerDay    int           `json:"requestsPerDay"`
	RemainingMinute   int           `json:"remainingPerMinute"`
	RemainingDay      int           `json:"remainingPerDay"`
	Limited           bool          `json:"isLimited"`
	UntilReset        time.Duration `json:"-"`
	UntilResetMs      int64         `json:"timeUntilResetMs"`
}

// record is the stored document.
type record struct {
	Minute []int64 `json:"minuteRequests"`
	Day    []int64 `json:"dayRequests"`
}

// Options configures a Limiter.
type Options struct {
	PerMinute int
	PerDay    int
	Key       string
	Now       func() time.Time
	err       error
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the 14/minute and 1400/day caps.
func DefaultOptions() Options {
	return Options{PerMinute: DefaultPerMinute, PerDay: DefaultPerDay, Key: DefaultKey, Now: time.Now}
}

// WithCaps overrides both caps. Both must be positive.
func WithCaps(perMinute, perDay int) Option {
	return func(o *Options) {
		if perMinute < 1 || perDay < 1 {
			o.err = fmt.Errorf("%w: caps must be positive, got %d/%d", ErrOptionViolation, perMinute, perDay)
			return
		}
		o.PerMinute, o.PerDay = perMinute, perDay
	}
}

// WithKey stores the counters under key.
func WithKey(key string) Option {
	return func(o *Options) { o.Key = key }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		if now != nil {
			o.Now = now
		}
	}
}

// Limiter enforces the caps. Safe for concurrent use within one process.
type Limiter struct {
	mu    sync.Mutex
	store kvstore.Store
	opts  Options
}

// New returns a Limiter backed by store.
func New(store kvstore.Store, opts ...Option) (*Limiter, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: store is nil", ErrOptionViolation)
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	return &Limiter{store: store, opts: o}, nil
}

// Check reports the current usage without recording anything.
func (l *Limiter) Check(ctx context.Context) (Info, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, err := l.load(ctx)
	if err != nil {
		return Info{}, err
	}

	return l.info(rec), nil
}

// Record counts one request in both windows.
func (l *Limiter) Record(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, err := l.load(ctx)
	if err != nil {
		return err
	}

	_, err = l.append(ctx, rec)
	return err
}

// Allow records a request if neither cap is reached; otherwise it returns
// ErrLimited together with the snapshot that refused it.
func (l *Limiter) Allow(ctx context.Context) (Info, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, err := l.load(ctx)
	if err != nil {
		return Info{}, err
	}
	if info := l.info(rec); info.Limited {
		return info, ErrLimited
	}
	rec, err = l.append(ctx, rec)
	if err != nil {
		return Info{}, err
	}

	return l.info(rec), nil
}

func (l *Limiter) append(ctx context.Context, rec record) (record, error) {
	now := l.opts.Now().UnixMilli()
	rec.Minute = append(rec.Minute, now)
	rec.Day = append(rec.Day, now)

	data, err := json.Marshal(rec)
	if err != nil {
		return rec, fmt.Errorf("ratelimit: encode: %w", err)
	}
	if err := l.store.Set(ctx, l.opts.Key, string(data)); err != nil {
		return rec, fmt.Errorf("ratelimit: save: %w", err)
	}

	return rec, nil
}

// load reads and prunes the stored counters. A missing or unreadable
// document counts as empty.
func (l *Limiter) load(ctx context.Context) (record, error) {
	raw, found, err := l.store.Get(ctx, l.opts.Key)
	if err != nil {
		return record{}, fmt.Errorf("ratelimit: load: %w", err)
	}
	var rec record
	if found {
		if json.Unmarshal([]byte(raw), &rec) != nil {
			rec = record{}
		}
	}
	now := l.opts.Now().UnixMilli()
	rec.Minute = prune(rec.Minute, now, Minute)
	rec.Day = prune(rec.Day, now, Day)

	return rec, nil
}

func (l *Limiter) info(rec record) Info {
	now := l.opts.Now().UnixMilli()
	minuteHit := len(rec.Minute) >= l.opts.PerMinute
	dayHit := len(rec.Day) >= l.opts.PerDay

	var until time.Duration
	switch {
	case minuteHit && len(rec.Minute) > 0:
		until = Minute - time.Duration(now-oldest(rec.Minute))*time.Millisecond
	case dayHit && len(rec.Day) > 0:
		until = Day - time.Duration(now-oldest(rec.Day))*time.Millisecond
	}
	if until < 0 {
		until = 0
	}

	return Info{
		RequestsPerMinute: len(rec.Minute),
		RequestsPerDay:    len(rec.Day),
		RemainingMinute:   max(0, l.opts.PerMinute-len(rec.Minute)),
		RemainingDay:      max(0, l.opts.PerDay-len(rec.Day)),
		Limited:           minuteHit || dayHit,
		UntilReset:        until,
		UntilResetMs:      until.Milliseconds(),
	}
}

func prune(ts []int64, now int64, window time.Duration) []int64 {
	kept := ts[:0]
	for _, t := range ts {
		if now-t < window.Milliseconds() {
			kept = append(kept, t)
		}
	}
	return kept
}

func oldest(ts []int64) int64 {
	m := ts[0]
	for _, t := range ts[1:] {
		if t < m {
			m = t
		}
	}
	return m
}

// FormatUntilReset renders d as "Now", "Nm" or "Hh Mm".
func FormatUntilReset(d time.Duration) string {
	if d <= 0 {
		return "Now"
	}
	minutes := int(d / time.Minute)
	if hours := minutes / 60; hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}
