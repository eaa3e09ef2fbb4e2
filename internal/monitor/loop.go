// Package monitor implements the Monitoring Loop (C8): the periodic
// heartbeat that wakes every poll_interval and fans a bounded worker pool
// out over every active, monitoring-enabled filter.
package monitor

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nikoly240702/tender-sniper/internal/domain/filter"
	"github.com/nikoly240702/tender-sniper/internal/domain/notification"
	"github.com/nikoly240702/tender-sniper/internal/domain/tender"
	"github.com/nikoly240702/tender-sniper/internal/domain/tendercache"
	"github.com/nikoly240702/tender-sniper/internal/domain/user"
	"github.com/nikoly240702/tender-sniper/internal/matching"
	"github.com/nikoly240702/tender-sniper/internal/notify"
	"github.com/nikoly240702/tender-sniper/internal/search"
)

// SheetsExporter is the optional spreadsheet collaborator hook. A nil exporter disables the step
// entirely — most deployments never configure a spreadsheet.
type SheetsExporter interface {
	AppendTender(ctx context.Context, userID string, t *tender.Tender, m matching.Match) error
}

// Loop owns the poll_interval ticker and the bounded per-filter worker pool.
type Loop struct {
	filters filter.Repository
	users   user.Repository
	search  *search.Service
	store   *notify.Store
	sender  *notify.Sender
	sheets  SheetsExporter
	cache   tendercache.Repository
	log     *zap.SugaredLogger

	pollInterval              time.Duration
	maxTenders                int
	scoreThreshold            int
	workerPoolSize            int
	consecutiveTransientLimit int
	tierLimits                func(tier string) (filtersLimit, dailyNotifications int)
}

type Config struct {
	PollInterval              time.Duration
	MaxTenders                int
	ScoreThreshold            int
	WorkerPoolSize            int
	ConsecutiveTransientLimit int
	TierLimits                func(tier string) (filtersLimit, dailyNotifications int)
}

func NewLoop(filters filter.Repository, users user.Repository, searchSvc *search.Service, store *notify.Store, sender *notify.Sender, sheets SheetsExporter, tenderCache tendercache.Repository, cfg Config, log *zap.SugaredLogger) *Loop {
	return &Loop{
		filters:                   filters,
		users:                     users,
		search:                    searchSvc,
		store:                     store,
		sender:                    sender,
		sheets:                    sheets,
		cache:                     tenderCache,
		log:                       log,
		pollInterval:              cfg.PollInterval,
		maxTenders:                cfg.MaxTenders,
		scoreThreshold:            cfg.ScoreThreshold,
		workerPoolSize:            cfg.WorkerPoolSize,
		consecutiveTransientLimit: cfg.ConsecutiveTransientLimit,
		tierLimits:                cfg.TierLimits,
	}
}

// Run blocks, ticking every pollInterval until ctx is cancelled. Each
// tick's fan-out completes (or is cancelled) before the next tick begins —
// a slow cycle delays the next one rather than overlapping it.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := l.runCycle(ctx); err != nil && ctx.Err() == nil {
				l.log.Errorw("monitoring cycle failed", "error", err)
			}
		}
	}
}

func (l *Loop) runCycle(ctx context.Context) error {
	filters, err := l.filters.ListAllActive(ctx)
	if err != nil {
		return fmt.Errorf("list active filters: %w", err)
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(l.workerPoolSize)

	for _, f := range filters {
		f := f
		eg.Go(func() error {
			l.processFilter(egCtx, f)
			return nil
		})
	}
	return eg.Wait()
}

// processFilter runs one filter's monitoring pass.
// Errors within a single filter never abort the cycle — every failure mode
// here is logged and the worker moves on, so one bad filter or one down
// user channel cannot stall the other workers sharing the pool.
func (l *Loop) processFilter(ctx context.Context, f *filter.Filter) {
	u, err := l.users.GetByID(ctx, f.UserID)
	if err != nil || u == nil {
		l.log.Warnw("skipping filter, owner not found", "filter", f.ID, "error", err)
		return
	}
	if !u.MonitoringEnabled {
		return
	}

	aiEnabled := u.Tier == user.TierPremium
	results, err := l.search.Run(ctx, f, l.maxTenders, aiEnabled, u.ID, string(u.Tier))
	if err != nil {
		l.log.Warnw("instant-search path failed for filter", "filter", f.ID, "error", err)
		return
	}

	_, dailyLimit := l.tierLimits(string(u.Tier))
	consecutiveTransient := 0

	for _, r := range results {
		if r.Match.Score < l.scoreThreshold {
			continue
		}

		l.recordSeen(ctx, r.Tender)

		already, err := l.store.IsAlreadyNotified(ctx, u.ID, r.Tender.Number)
		if err != nil {
			l.log.Warnw("notification existence check failed", "filter", f.ID, "tender", r.Tender.Number, "error", err)
			continue
		}
		if already {
			continue
		}

		hasQuota, err := l.store.HasQuota(ctx, u, dailyLimit)
		if err != nil {
			l.log.Warnw("quota check failed", "user", u.ID, "error", err)
			continue
		}
		if !hasQuota {
			l.log.Infow("daily notification quota exhausted", "user", u.ID, "filter", f.ID)
			if _, _, err := l.sender.Deliver(ctx, u.ExternalID, quotaExceededMessage(dailyLimit)); err != nil {
				l.log.Warnw("failed to deliver quota-exceeded notice", "user", u.ID, "error", err)
			}
			break
		}

		message := formatMessage(r.Tender, r.Match, f.Name)
		outcome, externalMessageID, err := l.sender.Deliver(ctx, u.ExternalID, message)

		switch outcome {
		case notify.OutcomeOK:
			consecutiveTransient = 0
			if err := l.store.RecordDelivered(ctx, u, f.ID, f.Name, r.Tender, r.Match, notification.SourceAutoMonitoring, externalMessageID); err != nil {
				l.log.Errorw("failed to record delivered notification", "user", u.ID, "tender", r.Tender.Number, "error", err)
			}
			if l.sheets != nil {
				if err := l.sheets.AppendTender(ctx, u.ID, r.Tender, r.Match); err != nil {
					l.log.Warnw("spreadsheet export failed", "user", u.ID, "tender", r.Tender.Number, "error", err)
				}
			}
		case notify.OutcomeUserBlocked:
			u.Disable()
			if err := l.users.Update(ctx, u); err != nil {
				l.log.Errorw("failed to persist monitoring_enabled=false", "user", u.ID, "error", err)
			}
			return
		case notify.OutcomeBadRecipient:
			l.log.Warnw("dropping notification, bad recipient", "user", u.ID, "error", err)
		case notify.OutcomeTransient, notify.OutcomeRateLimited:
			consecutiveTransient++
			l.log.Warnw("notification delivery failed", "user", u.ID, "tender", r.Tender.Number, "outcome", outcome, "error", err)
			if consecutiveTransient >= l.consecutiveTransientLimit {
				l.log.Warnw("pausing user for this cycle after repeated transient failures", "user", u.ID)
				return
			}
		}
	}
}

// recordSeen upserts the tender_cache entry for a tender that cleared the
// score threshold this cycle: bumps times_matched when the content is
// unchanged since last_seen, resets it to 1 on a genuine content change.
// Best-effort — a cache write failure never blocks delivery.
func (l *Loop) recordSeen(ctx context.Context, t *tender.Tender) {
	if l.cache == nil {
		return
	}
	hash := tendercache.HashContent(t.ScoringFields())

	existing, err := l.cache.Get(ctx, t.Number)
	if err != nil {
		l.log.Warnw("tender cache lookup failed", "tender", t.Number, "error", err)
		return
	}

	timesMatched := 1
	if existing != nil && existing.ContentHash == hash {
		timesMatched = existing.TimesMatched + 1
	}

	entry := &tendercache.Entry{
		TenderNumber: t.Number,
		ContentHash:  hash,
		LastSeen:     time.Now(),
		TimesMatched: timesMatched,
	}
	if err := l.cache.Upsert(ctx, entry); err != nil {
		l.log.Warnw("tender cache upsert failed", "tender", t.Number, "error", err)
	}
}

// formatMessage renders the short chat-delivery text for one matched
// tender. Separate from the Report Generator's HTML cards — this is
// the push-notification text, plain and compact.
func formatMessage(t *tender.Tender, m matching.Match, filterName string) string {
	price := "не указана"
	if t.Price != nil {
		price = fmt.Sprintf("%.2f ₽", *t.Price)
	}
	return fmt.Sprintf(
		"🔔 Новый тендер по фильтру %q (score %d)\n\n%s\nЦена: %s\nЗаказчик: %s\nСовпадения: %v\n\n%s",
		filterName, m.Score, t.Name, price, t.CustomerName, m.MatchedKeywords, t.URL,
	)
}

// quotaExceededMessage renders the notice sent when a user's daily
// notification quota runs out mid-cycle. processFilter sends it each time a
// filter pass meets the exhausted quota; repeat notices across a user's
// filters and across cycles are not suppressed.
func quotaExceededMessage(dailyLimit int) string {
	return fmt.Sprintf("⚠️ Дневной лимит уведомлений (%d) исчерпан. Новые совпадения придут завтра.", dailyLimit)
}
