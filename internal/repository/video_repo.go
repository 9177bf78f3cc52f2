package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Harshil0408/contentify-backend/internal/model"
)

type VideoRepo struct {
	pool *pgxpool.Pool
}

func NewVideoRepo(pool *pgxpool.Pool) *VideoRepo {
	return &VideoRepo{pool: pool}
}

const videoColumns = `
	id, title, description, category, tags, video_url, video_public_id,
	thumbnail_url, thumbnail_public_id, duration, owner_id, views, downloads,
	average_watch_time, language, is_published, is_deleted, is_private,
	reported_by, report_reason, created_at, updated_at`

func scanVideo(row interface{ Scan(dest ...any) error }) (*model.Video, error) {
	var v model.Video
	err := row.Scan(
		&v.ID, &v.Title, &v.Description, &v.Category, &v.Tags,
		&v.VideoFile, &v.VideoPublicID, &v.Thumbnail, &v.ThumbnailPublicID,
		&v.Duration, &v.OwnerID, &v.Views, &v.Downloads, &v.AverageWatchTime,
		&v.Language, &v.IsPublished, &v.IsDeleted, &v.IsPrivate,
		&v.ReportedBy, &v.ReportReason, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// FindByID returns a video regardless of visibility flags. Used for
// ownership checks on update/delete.
func (r *VideoRepo) FindByID(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
	return scanVideo(r.pool.QueryRow(ctx,
		`SELECT `+videoColumns+` FROM videos WHERE id = $1`, videoID))
}

// FindVisibleByID returns a video only when it is published and not
// soft-deleted.
func (r *VideoRepo) FindVisibleByID(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
	return scanVideo(r.pool.QueryRow(ctx, `
		SELECT `+videoColumns+` FROM videos
		WHERE id = $1 AND is_deleted = FALSE AND is_published = TRUE`, videoID))
}

// FindDetail builds the composed single-video view for a viewer: owner
// projection, like count and the viewer-relative like/subscribe state,
// all in one joined query.
func (r *VideoRepo) FindDetail(ctx context.Context, videoID, viewerID uuid.UUID) (*model.VideoDetail, error) {
	var d model.VideoDetail
	err := r.pool.QueryRow(ctx, `
		SELECT v.id, v.title, v.description, v.category, v.tags,
		       v.video_url, v.thumbnail_url, v.duration, v.owner_id,
		       v.views, v.downloads, v.average_watch_time, v.language,
		       v.is_published, v.is_private, v.created_at, v.updated_at,
		       o.id, o.username, o.avatar,
		       (SELECT COUNT(*) FROM likes l WHERE l.video_id = v.id),
		       EXISTS (SELECT 1 FROM likes l
		               WHERE l.video_id = v.id AND l.liked_by = $2),
		       EXISTS (SELECT 1 FROM subscriptions s
		               WHERE s.channel_id = v.owner_id AND s.subscriber_id = $2)
		FROM videos v
		JOIN users o ON o.id = v.owner_id
		WHERE v.id = $1 AND v.is_deleted = FALSE AND v.is_published = TRUE`,
		videoID, viewerID).Scan(
		&d.ID, &d.Title, &d.Description, &d.Category, &d.Tags,
		&d.VideoFile, &d.Thumbnail, &d.Duration, &d.OwnerID,
		&d.Views, &d.Downloads, &d.AverageWatchTime, &d.Language,
		&d.IsPublished, &d.IsPrivate, &d.CreatedAt, &d.UpdatedAt,
		&d.Owner.ID, &d.Owner.Username, &d.Owner.Avatar,
		&d.LikeCount, &d.IsLiked, &d.IsSubscribed,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Insert stores a freshly published video.
func (r *VideoRepo) Insert(ctx context.Context, v *model.Video) (*model.Video, error) {
	return scanVideo(r.pool.QueryRow(ctx, `
		INSERT INTO videos (title, description, category, tags,
			video_url, video_public_id, thumbnail_url, thumbnail_public_id,
			duration, owner_id, language, is_published, views)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, TRUE, 0)
		RETURNING `+videoColumns,
		v.Title, v.Description, v.Category, v.Tags,
		v.VideoFile, v.VideoPublicID, v.Thumbnail, v.ThumbnailPublicID,
		v.Duration, v.OwnerID, v.Language))
}

// UpdateScalars applies the allow-listed PATCH fields. Nil pointers are
// skipped; an update with nothing set is a no-op.
func (r *VideoRepo) UpdateScalars(ctx context.Context, videoID uuid.UUID, u model.VideoUpdate) error {
	sets := []string{}
	args := []any{videoID}
	arg := 2

	add := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, arg))
		args = append(args, value)
		arg++
	}

	if u.Title != nil {
		add("title", *u.Title)
	}
	if u.Description != nil {
		add("description", *u.Description)
	}
	if u.Category != nil {
		add("category", strings.ToLower(*u.Category))
	}
	if u.Tags != nil {
		add("tags", u.Tags)
	}
	if u.Language != nil {
		add("language", strings.ToLower(*u.Language))
	}
	if u.IsPrivate != nil {
		add("is_private", *u.IsPrivate)
	}
	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = NOW()")
	query := "UPDATE videos SET " + strings.Join(sets, ", ") + " WHERE id = $1"
	_, err := r.pool.Exec(ctx, query, args...)
	return err
}

// ReplaceVideoAsset swaps the main media reference after a re-upload.
func (r *VideoRepo) ReplaceVideoAsset(ctx context.Context, videoID uuid.UUID, url, publicID, duration string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE videos
		SET video_url = $1, video_public_id = $2, duration = $3, updated_at = NOW()
		WHERE id = $4`,
		url, publicID, duration, videoID)
	return err
}

// ReplaceThumbnailAsset swaps the thumbnail reference after a re-upload.
func (r *VideoRepo) ReplaceThumbnailAsset(ctx context.Context, videoID uuid.UUID, url, publicID string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE videos
		SET thumbnail_url = $1, thumbnail_public_id = $2, updated_at = NOW()
		WHERE id = $3`,
		url, publicID, videoID)
	return err
}

// Delete permanently removes the video record.
func (r *VideoRepo) Delete(ctx context.Context, videoID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM videos WHERE id = $1`, videoID)
	return err
}

// ListParams controls the public discovery listing.
type ListParams struct {
	Page     int
	Limit    int
	Query    string
	SortBy   string
	SortDesc bool
	OwnerID  *uuid.UUID
}

var sortColumns = map[string]string{
	"createdAt": "v.created_at",
	"views":     "v.views",
	"title":     "v.title",
}

// List returns a page of published videos with owner projections.
func (r *VideoRepo) List(ctx context.Context, p ListParams) (*model.VideoPage, error) {
	where := []string{"v.is_published = TRUE", "v.is_deleted = FALSE"}
	args := []any{}
	arg := 1

	if p.OwnerID != nil {
		where = append(where, fmt.Sprintf("v.owner_id = $%d", arg))
		args = append(args, *p.OwnerID)
		arg++
	}
	if p.Query != "" {
		where = append(where, fmt.Sprintf("v.title ILIKE $%d", arg))
		args = append(args, "%"+p.Query+"%")
		arg++
	}

	column, ok := sortColumns[p.SortBy]
	if !ok {
		column = "v.created_at"
	}
	direction := "ASC"
	if p.SortDesc {
		direction = "DESC"
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM videos v WHERE `+whereClause, args...).Scan(&total)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT v.id, v.title, v.thumbnail_url, v.video_url, v.duration, v.views,
		       v.created_at, o.id, o.username, o.avatar
		FROM videos v
		JOIN users o ON o.id = v.owner_id
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d`,
		whereClause, column, direction, arg, arg+1)
	args = append(args, p.Limit, (p.Page-1)*p.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cards, err := collectListCards(rows)
	if err != nil {
		return nil, err
	}

	return &model.VideoPage{
		Videos:  cards,
		Page:    p.Page,
		Limit:   p.Limit,
		Total:   total,
		HasMore: p.Page*p.Limit < total,
	}, nil
}

// ListByOwner returns the owner's own videos newest first, soft-deleted
// excluded (unpublished ones are visible to their owner). The owner's
// listing is their channel dashboard, so each card also carries the
// description and the per-video like count.
func (r *VideoRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, page, limit int) (*model.VideoPage, error) {
	var total int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM videos WHERE owner_id = $1 AND is_deleted = FALSE`,
		ownerID).Scan(&total)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT v.id, v.title, v.description, v.thumbnail_url, v.video_url, v.duration,
		       v.views, v.created_at, o.id, o.username, o.avatar,
		       (SELECT COUNT(*) FROM likes l WHERE l.video_id = v.id) AS likes_count
		FROM videos v
		JOIN users o ON o.id = v.owner_id
		WHERE v.owner_id = $1 AND v.is_deleted = FALSE
		ORDER BY v.created_at DESC
		LIMIT $2 OFFSET $3`,
		ownerID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []model.VideoCard
	for rows.Next() {
		var c model.VideoCard
		var likeCount int
		err := rows.Scan(
			&c.ID, &c.Title, &c.Description, &c.Thumbnail, &c.VideoFile, &c.Duration,
			&c.Views, &c.CreatedAt, &c.Owner.ID, &c.Owner.Username, &c.Owner.Avatar,
			&likeCount,
		)
		if err != nil {
			return nil, err
		}
		c.LikeCount = &likeCount
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &model.VideoPage{
		Videos:  cards,
		Page:    page,
		Limit:   limit,
		Total:   total,
		HasMore: page*limit < total,
	}, nil
}

// ListSubscribedChannelVideos returns videos of the given channels that
// are published, not deleted and not private, newest first.
func (r *VideoRepo) ListSubscribedChannelVideos(ctx context.Context, channelIDs []uuid.UUID, page, limit int) (*model.VideoPage, error) {
	var total int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM videos
		WHERE owner_id = ANY($1) AND is_deleted = FALSE
		  AND is_private = FALSE AND is_published = TRUE`,
		channelIDs).Scan(&total)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT v.id, v.title, v.thumbnail_url, v.video_url, v.duration, v.views,
		       v.created_at, o.id, o.username, o.avatar
		FROM videos v
		JOIN users o ON o.id = v.owner_id
		WHERE v.owner_id = ANY($1) AND v.is_deleted = FALSE
		  AND v.is_private = FALSE AND v.is_published = TRUE
		ORDER BY v.created_at DESC
		LIMIT $2 OFFSET $3`,
		channelIDs, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cards, err := collectListCards(rows)
	if err != nil {
		return nil, err
	}

	return &model.VideoPage{
		Videos:  cards,
		Page:    page,
		Limit:   limit,
		Total:   total,
		HasMore: page*limit < total,
	}, nil
}

func collectListCards(rows pgx.Rows) ([]model.VideoCard, error) {
	var cards []model.VideoCard
	for rows.Next() {
		var c model.VideoCard
		err := rows.Scan(
			&c.ID, &c.Title, &c.Thumbnail, &c.VideoFile, &c.Duration,
			&c.Views, &c.CreatedAt, &c.Owner.ID, &c.Owner.Username, &c.Owner.Avatar,
		)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}
