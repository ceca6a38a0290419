package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/aussiebroadwan/contentdeck/internal/content/store"
)

// DefaultMetricsInterval is how often published posts are polled.
const DefaultMetricsInterval = 5 * time.Minute

// SweepReport summarises one reconciliation pass.
type SweepReport struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Scanned    int // published records looked at
	Updated    int // counters written
	Skipped    int // owner not linked, or unpublished mid-sweep
	Gone       int // post deleted on Reddit, record unpublished
	Failed     int // fetch or write failed, retried next sweep
}

// MetricsJob periodically copies upvote and comment counts from Reddit onto
// published records. Failures are per record: one bad post never stops the
// sweep. At most one sweep runs at a time.
type MetricsJob struct {
	Store     store.Store
	Links     *LinkService
	Reddit    RedditAPI
	Lifecycle *LifecycleService
	Logger    *slog.Logger
	Interval  time.Duration

	running sync.Mutex

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewMetricsJob creates the job. If interval is 0 or negative, defaults to
// five minutes.
func NewMetricsJob(
	st store.Store,
	links *LinkService,
	api RedditAPI,
	lifecycle *LifecycleService,
	logger *slog.Logger,
	interval time.Duration,
) *MetricsJob {
	if interval <= 0 {
		interval = DefaultMetricsInterval
	}

	return &MetricsJob{
		Store:     st,
		Links:     links,
		Reddit:    api,
		Lifecycle: lifecycle,
		Logger:    logger,
		Interval:  interval,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start begins the background worker. It is non-blocking; call Stop to shut
// it down.
func (j *MetricsJob) Start() {
	go j.run()
	j.Logger.Info("metrics job started", "interval", j.Interval)
}

// Stop shuts down the background worker and waits for an in-progress sweep
// to finish.
func (j *MetricsJob) Stop() {
	close(j.stopCh)
	<-j.doneCh
	j.Logger.Info("metrics job stopped")
}

func (j *MetricsJob) run() {
	defer close(j.doneCh)

	ticker := time.NewTicker(j.Interval)
	defer ticker.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-j.stopCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	// Sweep immediately on startup
	j.tick(ctx)

	for {
		select {
		case <-ticker.C:
			j.tick(ctx)
		case <-j.stopCh:
			return
		}
	}
}

func (j *MetricsJob) tick(ctx context.Context) {
	if _, err := j.SweepNow(ctx); errors.Is(err, ErrSweepInProgress) {
		j.Logger.Debug("metrics sweep skipped, previous sweep still running")
	}
}

// SweepNow runs a sweep immediately. It returns ErrSweepInProgress if one is
// already running.
func (j *MetricsJob) SweepNow(ctx context.Context) (SweepReport, error) {
	if !j.running.TryLock() {
		return SweepReport{}, ErrSweepInProgress
	}
	defer j.running.Unlock()

	return j.sweep(ctx)
}

func (j *MetricsJob) sweep(ctx context.Context) (SweepReport, error) {
	rep := SweepReport{StartedAt: time.Now()}
	j.Logger.Info("starting metrics sweep")

	published, err := j.Store.Contents().ListPublished(ctx)
	if err != nil {
		j.Logger.Error("failed to list published content", "error", err)
		return rep, err
	}

	creds := make(map[string]*LinkedCredential)
	for _, c := range published {
		if ctx.Err() != nil {
			break
		}
		rep.Scanned++
		l := j.Logger.With("content_id", c.ID, "post_id", c.Publication.RemotePostID)

		cred, ok := creds[c.UserID]
		if !ok {
			got, err := j.Links.Credential(ctx, c.UserID)
			switch {
			case errors.Is(err, ErrNotLinked):
			case err != nil:
				l.Error("failed to load reddit credential", "error", err)
				rep.Failed++
				continue
			default:
				cred = &got
			}
			creds[c.UserID] = cred
		}
		if cred == nil {
			l.Debug("owner has no linked reddit account")
			rep.Skipped++
			continue
		}

		check, err := checkRemote(ctx, j.Reddit, cred.RefreshToken, c.Publication.RemotePostID)
		if err != nil {
			l.Warn("failed to fetch post metrics", "error", err)
			rep.Failed++
			continue
		}

		if check.status == postGone {
			if err := j.Lifecycle.MarkGone(ctx, c.ID, c.Publication.RemotePostID); err != nil {
				l.Error("failed to unpublish gone post", "error", err)
				rep.Failed++
				continue
			}
			rep.Gone++
			continue
		}

		changed, err := j.Store.Contents().UpdateMetrics(ctx, c.ID, c.Publication.RemotePostID,
			check.post.Upvotes, check.post.Comments, time.Now())
		switch {
		case err != nil:
			l.Error("failed to store post metrics", "error", err)
			rep.Failed++
		case !changed:
			// unpublished or republished since the listing
			rep.Skipped++
		default:
			l.Debug("post metrics updated", "upvotes", check.post.Upvotes, "comments", check.post.Comments)
			rep.Updated++
		}
	}

	rep.FinishedAt = time.Now()
	j.Logger.Info("metrics sweep completed",
		"scanned", rep.Scanned,
		"updated", rep.Updated,
		"skipped", rep.Skipped,
		"gone", rep.Gone,
		"failed", rep.Failed,
	)
	return rep, nil
}
