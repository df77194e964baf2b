package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/swych-ai/swych_api/internal/repository"
	"github.com/swych-ai/swych_api/internal/service"
)

// CacheWarmWorker periodically refreshes the default client and testimonial
// listings so the landing page never pays a cold-cache read.
type CacheWarmWorker struct {
	clientService      *service.ClientService
	testimonialService *service.TestimonialService
	interval           time.Duration
}

// NewCacheWarmWorker constructs a CacheWarmWorker.
func NewCacheWarmWorker(clientService *service.ClientService, testimonialService *service.TestimonialService, interval time.Duration) *CacheWarmWorker {
	return &CacheWarmWorker{
		clientService:      clientService,
		testimonialService: testimonialService,
		interval:           interval,
	}
}

// Start begins the periodic warm loop and listens for context cancellation.
func (w *CacheWarmWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting cache warm worker")

	// Run immediately on start
	w.run(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Cache warm worker stopped")
			return
		}
	}
}

func (w *CacheWarmWorker) run(ctx context.Context) {
	start := time.Now()

	if _, err := w.clientService.List(ctx, repository.ClientFilter{}); err != nil {
		log.Error().Err(err).Msg("Failed to warm client listing")
	}
	if _, err := w.testimonialService.List(ctx, repository.TestimonialFilter{}); err != nil {
		log.Error().Err(err).Msg("Failed to warm testimonial listing")
	}

	log.Info().Dur("duration", time.Since(start)).Msg("Listing cache warmed")
}
