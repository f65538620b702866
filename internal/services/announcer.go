package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"eventscheduling/internal/domain"
)

// Announcer resolves audiences and fans messages out in the background, after the triggering
// write has committed. Wait blocks until every in-flight fan-out has finished.
type Announcer struct {
	resolver   domain.AudienceResolver
	dispatcher domain.Dispatcher
	renderer   domain.TemplateRenderer
	logger     *slog.Logger
	wg         sync.WaitGroup
}

// NewAnnouncer returns an Announcer using the given collaborators.
func NewAnnouncer(resolver domain.AudienceResolver, dispatcher domain.Dispatcher, renderer domain.TemplateRenderer, logger *slog.Logger) *Announcer {
	return &Announcer{
		resolver:   resolver,
		dispatcher: dispatcher,
		renderer:   renderer,
		logger:     logger,
	}
}

// Notice is a message to render once and deliver to every recipient.
type Notice struct {
	Category   domain.Category
	Template   string
	Data       any
	Attachment *domain.Attachment
}

// AnnounceTransition resolves the audience of req and delivers notice to it asynchronously.
func (a *Announcer) AnnounceTransition(ctx context.Context, req domain.AudienceRequest, notice Notice) {
	a.goDetached(ctx, func(ctx context.Context) {
		audience, err := a.resolver.ResolveAudience(ctx, req)
		if err != nil {
			a.logger.ErrorContext(ctx, "resolve audience failed", "kind", req.Kind, "event_id", req.EventID, "err", err)
			return
		}
		a.deliver(ctx, audience, notice)
	})
}

// AnnounceTo delivers notice to a fixed audience asynchronously.
func (a *Announcer) AnnounceTo(ctx context.Context, audience domain.Audience, notice Notice) {
	a.goDetached(ctx, func(ctx context.Context) {
		a.deliver(ctx, audience, notice)
	})
}

// DeliverNow renders notice and dispatches it synchronously, returning the report.
func (a *Announcer) DeliverNow(ctx context.Context, audience domain.Audience, notice Notice) (*domain.DispatchReport, error) {
	msg, err := a.render(notice)
	if err != nil {
		return nil, err
	}
	return a.dispatcher.Dispatch(ctx, audience, notice.Category, func(string) (*domain.Message, error) {
		return msg, nil
	}), nil
}

// Wait blocks until all background deliveries have returned.
func (a *Announcer) Wait() {
	a.wg.Wait()
}

func (a *Announcer) goDetached(ctx context.Context, fn func(ctx context.Context)) {
	ctx = context.WithoutCancel(ctx)
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		fn(ctx)
	}()
}

func (a *Announcer) deliver(ctx context.Context, audience domain.Audience, notice Notice) {
	if audience.Len() == 0 {
		return
	}
	if _, err := a.DeliverNow(ctx, audience, notice); err != nil {
		a.logger.ErrorContext(ctx, "render notification failed", "category", notice.Category, "err", err)
	}
}

func (a *Announcer) render(notice Notice) (*domain.Message, error) {
	subject, html, text, err := a.renderer.Render(notice.Template, notice.Data)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", notice.Template, err)
	}
	return &domain.Message{
		Category:   notice.Category,
		Subject:    subject,
		HTMLBody:   html,
		TextBody:   text,
		Attachment: notice.Attachment,
	}, nil
}
