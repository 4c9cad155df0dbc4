package scheduler

import (
	"context"
	"fmt"
	"time"

	"blog-api/internal/catalog"
	"blog-api/internal/logger"
)

// CatalogReloader handles periodic reloading of the markdown post catalog
type CatalogReloader struct {
	catalog       *catalog.Catalog
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewCatalogReloader creates a new catalog reloader
func NewCatalogReloader(
	cat *catalog.Catalog,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *CatalogReloader {
	return &CatalogReloader{
		catalog:       cat,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start begins the periodic reload process
func (cr *CatalogReloader) Start(ctx context.Context) error {
	// Load immediately on start
	if err := cr.Reload(); err != nil {
		return fmt.Errorf("initial catalog reload failed: %w", err)
	}

	ticker := time.NewTicker(cr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := cr.Reload(); err != nil {
					cr.logger.Error("failed to reload post catalog",
						logger.Error(err))
				}
			case <-cr.manualTrigger:
				cr.logger.Info("manual catalog reload triggered")
				if err := cr.Reload(); err != nil {
					cr.logger.Error("failed to reload post catalog",
						logger.Error(err))
				}
			case <-cr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader
func (cr *CatalogReloader) Stop() {
	close(cr.stopCh)
}

// Reload re-scans the content directory and swaps the in-memory catalog
func (cr *CatalogReloader) Reload() error {
	if err := cr.catalog.Load(); err != nil {
		return fmt.Errorf("failed to load post catalog: %w", err)
	}

	cr.logger.Info("post catalog reloaded",
		logger.Int("posts", cr.catalog.Count()))
	return nil
}
