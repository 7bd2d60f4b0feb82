package question

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// CacheWarmer reloads the category cache on an interval so reads keep hitting
// it after the TTL lapses.
type CacheWarmer struct {
	service   *Service
	interval  time.Duration
	timeout   time.Duration
	logger    zerolog.Logger
	shutdownC chan struct{}
	stopOnce  sync.Once
}

func NewCacheWarmer(service *Service, interval time.Duration, logger zerolog.Logger) *CacheWarmer {
	if interval <= 0 {
		interval = time.Minute
	}
	return &CacheWarmer{
		service:   service,
		interval:  interval,
		timeout:   4 * time.Second,
		logger:    logger.With().Str("component", "category_cache_warmer").Logger(),
		shutdownC: make(chan struct{}),
	}
}

// Run refreshes once immediately, then on every tick until Stop.
func (w *CacheWarmer) Run() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.refresh()
	for {
		select {
		case <-w.shutdownC:
			w.logger.Info().Msg("category cache warmer stopping")
			return
		case <-ticker.C:
			w.refresh()
		}
	}
}

func (w *CacheWarmer) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	if err := w.service.RefreshCategories(ctx); err != nil {
		w.logger.Warn().Err(err).Msg("category cache refresh failed")
	}
}

func (w *CacheWarmer) Stop() {
	w.stopOnce.Do(func() { close(w.shutdownC) })
}
