package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Harshil0408/contentify-backend/internal/model"
)

type ViewRepo struct {
	pool *pgxpool.Pool
}

func NewViewRepo(pool *pgxpool.Pool) *ViewRepo {
	return &ViewRepo{pool: pool}
}

// Ensure creates the (user, video) view row on first watch with the
// duration snapshot. Subsequent views keep the existing progress.
func (r *ViewRepo) Ensure(ctx context.Context, userID, videoID uuid.UUID, videoDuration float64) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO video_views (user_id, video_id, video_duration)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, video_id) DO NOTHING`,
		userID, videoID, videoDuration)
	return err
}

// Get returns the view state for a (user, video) pair.
func (r *ViewRepo) Get(ctx context.Context, userID, videoID uuid.UUID) (*model.VideoView, error) {
	var v model.VideoView
	err := r.pool.QueryRow(ctx, `
		SELECT user_id, video_id, watched_time, video_duration,
		       watch_percentage, viewed_at
		FROM video_views
		WHERE user_id = $1 AND video_id = $2`,
		userID, videoID).Scan(
		&v.UserID, &v.VideoID, &v.WatchedTime, &v.VideoDuration,
		&v.WatchPercentage, &v.ViewedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// UpdateProgress persists a recomputed watch state.
func (r *ViewRepo) UpdateProgress(ctx context.Context, userID, videoID uuid.UUID, watchedTime, percentage float64) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE video_views
		SET watched_time = $3, watch_percentage = $4, viewed_at = NOW()
		WHERE user_id = $1 AND video_id = $2`,
		userID, videoID, watchedTime, percentage)
	return err
}

// ListAll returns every view record owned by the user.
func (r *ViewRepo) ListAll(ctx context.Context, userID uuid.UUID) ([]model.VideoView, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT user_id, video_id, watched_time, video_duration,
		       watch_percentage, viewed_at
		FROM video_views
		WHERE user_id = $1`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []model.VideoView
	for rows.Next() {
		var v model.VideoView
		err := rows.Scan(
			&v.UserID, &v.VideoID, &v.WatchedTime, &v.VideoDuration,
			&v.WatchPercentage, &v.ViewedAt,
		)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

// ListCompletedIDs returns video ids the user watched past the given
// completion percentage. Feeds the recommendation exclusion set.
func (r *ViewRepo) ListCompletedIDs(ctx context.Context, userID uuid.UUID, threshold float64) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT video_id FROM video_views
		WHERE user_id = $1 AND watch_percentage >= $2`,
		userID, threshold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// NotifyWatchEvent wakes the view worker for a video.
func (r *ViewRepo) NotifyWatchEvent(ctx context.Context, videoID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `SELECT pg_notify('watch_events', $1)`, videoID.String())
	return err
}
