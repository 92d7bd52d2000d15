package alert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/KNICEX/price-alert-agent/internal/schedule"
	"github.com/KNICEX/price-alert-agent/internal/service/notification"
	"github.com/KNICEX/price-alert-agent/internal/service/quote"
	"github.com/samber/lo"
)

const timestampLayout = "02-01-2006 03:04:05 PM"

// Runner is the single-pass orchestrator: load rules, fetch quotes,
// evaluate, commit the surviving set. Success is silent; only triggers and
// errors go to the notifier. A run never returns an error: every failure is
// reported through the notification channel and ends the run early, leaving
// the store untouched.
type Runner struct {
	store    RuleStore
	quoteSvc quote.Service
	notifier notification.Notifier
	loc      *time.Location
	now      func() time.Time
}

type Option func(r *Runner)

func WithNotifier(notifier notification.Notifier) Option {
	return func(r *Runner) {
		r.notifier = notifier
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

func NewRunner(store RuleStore, quoteSvc quote.Service, opts ...Option) schedule.Task {
	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		loc = time.FixedZone("WIB", 7*60*60)
	}
	r := &Runner{
		store:    store,
		quoteSvc: quoteSvc,
		notifier: notification.NewConsoleNotifier(),
		loc:      loc,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Runner) Run(ctx context.Context) error {
	rules, err := r.store.LoadAll(ctx)
	if err != nil || len(rules) == 0 {
		if err != nil && !errors.Is(err, ErrNoRules) {
			slog.Error("failed to load alert rules", "error", err)
		}
		r.notifyError(ctx, "alert store has no header columns")
		return nil
	}

	symbols := lo.Uniq(lo.Map(rules, func(item Rule, index int) string {
		return item.Symbol
	}))

	quotes, err := r.quoteSvc.Fetch(ctx, symbols)
	if err != nil {
		slog.Error("failed to fetch quotes", "symbols", symbols, "error", err)
		r.notifyError(ctx, fmt.Sprintf("3 attempts have failed reading quotes %v", symbols))
		return nil
	}

	surviving := make([]Rule, 0, len(rules))
	var triggeredIds []int64
	for _, rule := range rules {
		res := Evaluate(rule, quotes)
		if res.Message != "" {
			r.notifyResult(ctx, res)
		}
		if res.Triggered {
			triggeredIds = append(triggeredIds, rule.Id)
		} else {
			surviving = append(surviving, rule)
		}
	}

	lastRun := r.now().In(r.loc).Format(timestampLayout)
	if err = r.store.Commit(ctx, surviving, triggeredIds, lastRun); err != nil {
		slog.Error("failed to commit alert rules", "symbols", symbols, "error", err)
		r.notifyError(ctx, fmt.Sprintf("reading quotes %v", symbols))
		return nil
	}
	return nil
}

func (r *Runner) Name() string {
	return "price alert task"
}

func (r *Runner) notifyResult(ctx context.Context, res Result) {
	if res.IsError {
		r.notifyError(ctx, res.Message)
		return
	}
	r.send(ctx, "✔ "+res.Message)
}

func (r *Runner) notifyError(ctx context.Context, msg string) {
	r.send(ctx, "❗ ERROR: "+msg)
}

func (r *Runner) send(ctx context.Context, msg string) {
	if err := r.notifier.Send(ctx, msg); err != nil {
		slog.Error("failed to send notification", "message", msg, "error", err)
	}
}
