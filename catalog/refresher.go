package catalog

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/robfig/cron/v3"
)

// Refresher reloads the catalog on a schedule so new or edited tools get embedded before the
// first chat request needs them.
type Refresher struct {
	store   *Store
	cron    *cron.Cron
	timeout time.Duration
	logger  *log.Logger
}

// NewRefresher validates spec (standard 5-field cron or a descriptor such as "@every 1h").
func NewRefresher(store *Store, spec string, timeout time.Duration) (*Refresher, error) {
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", spec, err)
	}
	r := &Refresher{
		store:   store,
		cron:    cron.New(),
		timeout: timeout,
		logger:  log.New(os.Stdout, "[REFRESH] ", log.LstdFlags),
	}
	if _, err := r.cron.AddFunc(spec, r.tick); err != nil {
		return nil, fmt.Errorf("failed to schedule catalog refresh: %w", err)
	}
	return r, nil
}

func (r *Refresher) Start() {
	r.cron.Start()
}

// Stop halts the schedule and waits for a running refresh to finish.
func (r *Refresher) Stop() {
	<-r.cron.Stop().Done()
}

// RunOnce loads the catalog once and reports the number of tools.
func (r *Refresher) RunOnce(ctx context.Context) (int, error) {
	tools, err := r.store.Load(ctx)
	if err != nil {
		return 0, err
	}
	return len(tools), nil
}

func (r *Refresher) tick() {
	ctx := context.Background()
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	n, err := r.RunOnce(ctx)
	if err != nil {
		r.logger.Printf("Catalog refresh failed: %v", err)
		return
	}
	r.logger.Printf("Catalog refreshed (%d tools)", n)
}
