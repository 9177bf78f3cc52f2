package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ViewWorker listens for PostgreSQL NOTIFY on the 'watch_events'
// channel and batches view-count and average-watch-time aggregation.
// A burst of watch events for video X inside one window costs a single
// recomputation.
type ViewWorker struct {
	pool    *pgxpool.Pool
	batchMs time.Duration

	mu      sync.Mutex
	pending map[string]struct{} // video IDs waiting for aggregation
}

// NewViewWorker creates a view aggregation worker.
func NewViewWorker(pool *pgxpool.Pool) *ViewWorker {
	return &ViewWorker{
		pool:    pool,
		batchMs: 5 * time.Second,
		pending: make(map[string]struct{}),
	}
}

// Start begins listening for watch_events notifications and processing
// batches.
func (w *ViewWorker) Start(ctx context.Context) {
	log.Printf("view-worker: starting (batch window=%s)", w.batchMs)

	for {
		if err := w.listenLoop(ctx); err != nil {
			if ctx.Err() != nil {
				log.Println("view-worker: stopping (context cancelled)")
				return
			}
			log.Printf("view-worker: listen error, reconnecting in 5s: %v", err)
			select {
			case <-time.After(5 * time.Second):
			case <-ctx.Done():
				log.Println("view-worker: stopping (context cancelled)")
				return
			}
		}
	}
}

// listenLoop acquires a dedicated connection, LISTENs on watch_events,
// and collects notifications into batched windows.
func (w *ViewWorker) listenLoop(ctx context.Context) error {
	conn, err := w.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, "LISTEN watch_events")
	if err != nil {
		return err
	}
	log.Println("view-worker: listening on watch_events")

	flushCtx, flushCancel := context.WithCancel(ctx)
	defer flushCancel()
	go w.flushLoop(flushCtx)

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}

		videoID := notification.Payload
		if videoID == "" {
			continue
		}

		w.mu.Lock()
		w.pending[videoID] = struct{}{}
		w.mu.Unlock()
	}
}

// flushLoop periodically drains the pending set.
func (w *ViewWorker) flushLoop(ctx context.Context) {
	ticker := time.NewTicker(w.batchMs)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.flush(ctx)
		case <-ctx.Done():
			// Final flush before exit
			w.flush(context.Background())
			return
		}
	}
}

// flush drains the pending set and re-aggregates each video's view
// count and average watch time from the view records.
func (w *ViewWorker) flush(ctx context.Context) {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}

	// Swap out the pending map
	batch := w.pending
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	aggregated := 0
	for videoID := range batch {
		vid, err := uuid.Parse(videoID)
		if err != nil {
			log.Printf("view-worker: bad payload %q", videoID)
			continue
		}
		if err := w.aggregate(ctx, vid); err != nil {
			log.Printf("view-worker: aggregate error for %s: %v", videoID, err)
			continue
		}
		aggregated++
	}

	if aggregated > 0 {
		log.Printf("view-worker: batch complete, %d videos aggregated (from %d notifications)",
			aggregated, len(batch))
	}
}

func (w *ViewWorker) aggregate(ctx context.Context, videoID uuid.UUID) error {
	_, err := w.pool.Exec(ctx, `
		UPDATE videos
		SET views = (SELECT COUNT(*) FROM video_views vv WHERE vv.video_id = $1),
		    average_watch_time = COALESCE(
		        (SELECT AVG(vv.watched_time) FROM video_views vv
		         WHERE vv.video_id = $1 AND vv.watched_time > 0), 0)
		WHERE id = $1`,
		videoID)
	return err
}
