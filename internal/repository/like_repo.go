package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Harshil0408/contentify-backend/internal/model"
)

type LikeRepo struct {
	pool *pgxpool.Pool
}

func NewLikeRepo(pool *pgxpool.Pool) *LikeRepo {
	return &LikeRepo{pool: pool}
}

// ToggleVideoLike flips the (user, video) like edge and reports which
// way it went. Delete-first: if no edge was removed, an insert with
// ON CONFLICT DO NOTHING creates it — under a concurrent duplicate the
// unique index rejects the second insert and both callers converge on
// "added" with exactly one edge stored.
func (r *LikeRepo) ToggleVideoLike(ctx context.Context, userID, videoID uuid.UUID) (added bool, err error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM likes WHERE video_id = $1 AND liked_by = $2`,
		videoID, userID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO likes (video_id, liked_by) VALUES ($1, $2)
		ON CONFLICT (video_id, liked_by) WHERE video_id IS NOT NULL DO NOTHING`,
		videoID, userID)
	if err != nil {
		return false, err
	}
	return true, nil
}

// CountForVideo returns the number of like edges targeting a video.
func (r *LikeRepo) CountForVideo(ctx context.Context, videoID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM likes WHERE video_id = $1`, videoID).Scan(&count)
	return count, err
}

// ListLikedVideos returns the user's liked videos with owner
// projections, most recently liked first.
func (r *LikeRepo) ListLikedVideos(ctx context.Context, userID uuid.UUID) ([]model.LikedVideo, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT l.id, l.created_at, v.id, v.title, v.thumbnail_url, v.views,
		       v.duration, o.id, o.username, o.avatar
		FROM likes l
		JOIN videos v ON v.id = l.video_id
		JOIN users o ON o.id = v.owner_id
		WHERE l.liked_by = $1 AND l.video_id IS NOT NULL
		ORDER BY l.created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLikedVideos(rows)
}

func collectLikedVideos(rows pgx.Rows) ([]model.LikedVideo, error) {
	var liked []model.LikedVideo
	for rows.Next() {
		var lv model.LikedVideo
		err := rows.Scan(
			&lv.LikeID, &lv.LikedAt, &lv.VideoID, &lv.Title, &lv.Thumbnail,
			&lv.Views, &lv.Duration, &lv.Owner.ID, &lv.Owner.Username, &lv.Owner.Avatar,
		)
		if err != nil {
			return nil, err
		}
		liked = append(liked, lv)
	}
	return liked, rows.Err()
}
