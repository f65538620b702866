package services

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"eventscheduling/internal/domain"
)

const defaultDispatchConcurrency = 4

type dispatcher struct {
	notifier    domain.Notifier
	metrics     domain.Metrics
	logger      *slog.Logger
	concurrency int
}

// NewDispatcher returns a Dispatcher that sends through notifier with at most concurrency
// sends in flight. metrics may be nil.
func NewDispatcher(notifier domain.Notifier, metrics domain.Metrics, logger *slog.Logger, concurrency int) domain.Dispatcher {
	if concurrency < 1 {
		concurrency = defaultDispatchConcurrency
	}
	return &dispatcher{
		notifier:    notifier,
		metrics:     metrics,
		logger:      logger,
		concurrency: concurrency,
	}
}

// Dispatch attempts exactly one send per recipient. A failure is recorded and logged; it never
// stops the remaining sends.
func (d *dispatcher) Dispatch(ctx context.Context, recipients domain.Audience, category domain.Category, render domain.RenderFunc) *domain.DispatchReport {
	report := &domain.DispatchReport{
		Category:  category,
		Succeeded: []string{},
		Failed:    map[string]string{},
	}
	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(d.concurrency)
	for _, recipientID := range recipients.Members() {
		g.Go(func() error {
			err := d.sendOne(ctx, recipientID, category, render)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Failed[recipientID] = err.Error()
				d.logger.WarnContext(ctx, "notification delivery failed",
					"recipient_id", recipientID,
					"category", category,
					"err", err,
				)
			} else {
				report.Succeeded = append(report.Succeeded, recipientID)
			}
			if d.metrics != nil {
				d.metrics.ObserveDelivery(category, err == nil)
			}
			// Errors stay in the report so the group never cancels siblings.
			return nil
		})
	}
	_ = g.Wait()
	d.logger.InfoContext(ctx, "notification fan-out finished",
		"category", category,
		"succeeded", len(report.Succeeded),
		"failed", len(report.Failed),
	)
	return report
}

func (d *dispatcher) sendOne(ctx context.Context, recipientID string, category domain.Category, render domain.RenderFunc) error {
	msg, err := render(recipientID)
	if err != nil {
		return &domain.DeliveryError{RecipientID: recipientID, Category: category, Err: err}
	}
	out := *msg
	if out.Category == "" {
		out.Category = category
	}
	if err := d.notifier.Send(ctx, recipientID, &out); err != nil {
		return &domain.DeliveryError{RecipientID: recipientID, Category: category, Err: err}
	}
	return nil
}
