package links

import (
	"context"
	"time"

	"pedigree-registry/internal/platform/logger"
)

const DefaultSweepInterval = 15 * time.Minute

// Sweeper es el único proceso por tiempo: PENDING -> EXPIRED.
type Sweeper struct {
	svc      *Service
	interval time.Duration
	log      logger.Logger
}

func NewSweeper(svc *Service, interval time.Duration, log logger.Logger) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Sweeper{svc: svc, interval: interval, log: log.With(map[string]any{"component": "links.sweeper"})}
}

// Run barre una vez al arrancar y luego en cada tick, hasta que ctx se cancele.
func (sw *Sweeper) Run(ctx context.Context) {
	t := time.NewTicker(sw.interval)
	defer t.Stop()

	sw.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			sw.log.Info("sweeper stopped", nil)
			return
		case <-t.C:
			sw.sweep(ctx)
		}
	}
}

func (sw *Sweeper) sweep(ctx context.Context) {
	if _, err := sw.svc.ExpireStale(ctx); err != nil && ctx.Err() == nil {
		sw.log.Error("expire stale link requests failed", map[string]any{"err": err})
	}
}
