package notify

import (
	"context"
	"log/slog"
	"sync"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/pkg/logger"
)

// Notifier delivers user-facing notifications. Delivery is fire-and-forget.
type Notifier interface {
	Notify(ctx context.Context, kind domain.NoticeKind, message string)
}

type collectorKey struct{}

// Collector accumulates the notices produced while serving one request or
// one CLI command.
type Collector struct {
	mu      sync.Mutex
	notices []domain.Notice
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add records n.
func (c *Collector) Add(n domain.Notice) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notices = append(c.notices, n)
}

// Notices returns the recorded notices in emission order.
func (c *Collector) Notices() []domain.Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Notice, len(c.notices))
	copy(out, c.notices)
	return out
}

// WithCollector returns a context carrying c.
func WithCollector(ctx context.Context, c *Collector) context.Context {
	return context.WithValue(ctx, collectorKey{}, c)
}

// CollectorFromContext returns the collector stored in ctx, or nil.
func CollectorFromContext(ctx context.Context) *Collector {
	c, _ := ctx.Value(collectorKey{}).(*Collector)
	return c
}

// LogNotifier logs every notice and hands it to the context's collector, if
// one is present.
type LogNotifier struct {
	logger *slog.Logger
}

// New creates a LogNotifier.
func New(l *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: l}
}

// Notify implements Notifier.
func (n *LogNotifier) Notify(ctx context.Context, kind domain.NoticeKind, message string) {
	logger.WithContext(ctx, n.logger).LogAttrs(ctx, slog.LevelInfo, "notification",
		slog.String("kind", string(kind)),
		slog.String("message", message),
	)
	if c := CollectorFromContext(ctx); c != nil {
		c.Add(domain.Notice{Kind: kind, Message: message})
	}
}

// Func adapts a plain function to Notifier.
type Func func(ctx context.Context, kind domain.NoticeKind, message string)

// Notify implements Notifier.
func (f Func) Notify(ctx context.Context, kind domain.NoticeKind, message string) {
	f(ctx, kind, message)
}
