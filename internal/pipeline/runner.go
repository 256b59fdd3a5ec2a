package pipeline

import (
	"context"
	"time"

	"github.com/hetulpatel/OddsEdge/internal/logging"
)

// RunLoop drives periodic refreshes until the context is cancelled. The first
// cycle runs immediately. Each cycle runs to completion before the next is
// scheduled, so the movement detector never races with itself.
func RunLoop(ctx context.Context, p *Pipeline, interval time.Duration, handleFn func(context.Context, *Result) error) {
	if interval <= 0 {
		interval = 2 * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		res, err := p.Refresh(ctx)
		if err != nil {
			logging.Errorf("[pipeline] refresh failed: %v", err)
		} else if handleFn != nil {
			if err := handleFn(ctx, res); err != nil {
				logging.Errorf("[pipeline] handler error: %v", err)
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
