package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Harshil0408/contentify-backend/internal/model"
)

// Candidate queries for the recommendation composer. Each heuristic runs
// independently over published, non-deleted videos minus the exclusion
// set; the composer merges the four lists.

const candidateColumns = `
	v.id, v.title, v.thumbnail_url, v.video_url, v.duration, v.views,
	v.created_at, o.id, o.username, o.avatar`

// ListSameChannel returns the newest videos by the given owner.
func (r *VideoRepo) ListSameChannel(ctx context.Context, ownerID uuid.UUID, exclude []uuid.UUID, limit int) ([]model.VideoCard, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+candidateColumns+`
		FROM videos v
		JOIN users o ON o.id = v.owner_id
		WHERE v.owner_id = $1 AND NOT (v.id = ANY($2))
		  AND v.is_deleted = FALSE AND v.is_published = TRUE
		ORDER BY v.created_at DESC
		LIMIT $3`,
		ownerID, exclude, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectListCards(rows)
}

// ListMostCommented ranks candidates by descending comment count.
func (r *VideoRepo) ListMostCommented(ctx context.Context, exclude []uuid.UUID, limit int) ([]model.VideoCard, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+candidateColumns+`
		FROM videos v
		JOIN users o ON o.id = v.owner_id
		LEFT JOIN comments c ON c.video_id = v.id
		WHERE NOT (v.id = ANY($1))
		  AND v.is_deleted = FALSE AND v.is_published = TRUE
		GROUP BY v.id, o.id
		ORDER BY COUNT(c.id) DESC
		LIMIT $2`,
		exclude, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectListCards(rows)
}

// ListMostLiked ranks candidates by descending like-edge count.
func (r *VideoRepo) ListMostLiked(ctx context.Context, exclude []uuid.UUID, limit int) ([]model.VideoCard, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+candidateColumns+`
		FROM videos v
		JOIN users o ON o.id = v.owner_id
		LEFT JOIN likes l ON l.video_id = v.id
		WHERE NOT (v.id = ANY($1))
		  AND v.is_deleted = FALSE AND v.is_published = TRUE
		GROUP BY v.id, o.id
		ORDER BY COUNT(l.id) DESC
		LIMIT $2`,
		exclude, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectListCards(rows)
}

// ListTagMatched returns candidates sharing at least one tag.
func (r *VideoRepo) ListTagMatched(ctx context.Context, tags []string, exclude []uuid.UUID, limit int) ([]model.VideoCard, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+candidateColumns+`
		FROM videos v
		JOIN users o ON o.id = v.owner_id
		WHERE v.tags && $1 AND NOT (v.id = ANY($2))
		  AND v.is_deleted = FALSE AND v.is_published = TRUE
		LIMIT $3`,
		tags, exclude, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectListCards(rows)
}
