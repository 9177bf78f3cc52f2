package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Harshil0408/contentify-backend/internal/model"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const userColumns = `
	id, username, email, fullname, avatar, cover_image, password_hash,
	refresh_token, google_id, is_onboarded, age, city, hobby, language,
	phone_no, watch_history, created_at, updated_at`

func scanUser(row interface{ Scan(dest ...any) error }) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.Fullname, &u.Avatar, &u.CoverImage,
		&u.PasswordHash, &u.RefreshToken, &u.GoogleID, &u.IsOnboarded,
		&u.Age, &u.City, &u.Hobby, &u.Language, &u.PhoneNo,
		&u.WatchHistory, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByID returns a single user by id.
func (r *UserRepo) FindByID(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, userID))
}

// FindByEmailOrUsername matches either credential field (login/signup).
func (r *UserRepo) FindByEmailOrUsername(ctx context.Context, email, username string) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1 OR username = $2`,
		email, username))
}

// FindByGoogleID returns the user linked to a google identity.
func (r *UserRepo) FindByGoogleID(ctx context.Context, googleID string) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE google_id = $1`, googleID))
}

// Create inserts a new user and returns the stored record.
func (r *UserRepo) Create(ctx context.Context, u *model.User) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		INSERT INTO users (username, email, fullname, avatar, password_hash, google_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+userColumns,
		u.Username, u.Email, u.Fullname, u.Avatar, u.PasswordHash, u.GoogleID))
}

// UpdateRefreshToken stores the current refresh token ("" clears it).
func (r *UserRepo) UpdateRefreshToken(ctx context.Context, userID uuid.UUID, token string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users SET refresh_token = $1, updated_at = NOW() WHERE id = $2`,
		token, userID)
	return err
}

// Onboard applies the onboarding payload and flips is_onboarded.
func (r *UserRepo) Onboard(ctx context.Context, userID uuid.UUID, in model.OnboardingInput) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		UPDATE users
		SET age = $1, city = $2, hobby = $3, language = $4, phone_no = $5,
		    is_onboarded = TRUE, updated_at = NOW()
		WHERE id = $6
		RETURNING `+userColumns,
		in.Age, in.City, in.Hobby, in.Language, in.PhoneNo, userID))
}

// TouchWatchHistory moves videoID to the front of the user's watch
// history: any prior occurrence is removed, then the id is prepended.
// Repeated views leave the video at the head without duplicating it.
func (r *UserRepo) TouchWatchHistory(ctx context.Context, userID, videoID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users
		SET watch_history = array_prepend($2, array_remove(watch_history, $2)),
		    updated_at = NOW()
		WHERE id = $1`,
		userID, videoID)
	return err
}

// GetWatchHistory returns the populated watch history, preserving the
// stored order (most recent first). Deleted videos are skipped.
func (r *UserRepo) GetWatchHistory(ctx context.Context, userID uuid.UUID) ([]model.VideoCard, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT v.id, v.title, v.thumbnail_url, v.duration, v.views, v.created_at,
		       o.id, o.username, o.avatar
		FROM users u
		CROSS JOIN unnest(u.watch_history) WITH ORDINALITY AS h(video_id, pos)
		JOIN videos v ON v.id = h.video_id
		JOIN users o ON o.id = v.owner_id
		WHERE u.id = $1 AND v.is_deleted = FALSE
		ORDER BY h.pos`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []model.VideoCard
	for rows.Next() {
		var c model.VideoCard
		err := rows.Scan(
			&c.ID, &c.Title, &c.Thumbnail, &c.Duration, &c.Views, &c.CreatedAt,
			&c.Owner.ID, &c.Owner.Username, &c.Owner.Avatar,
		)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// ChannelProfile returns a channel page projection with subscriber and
// video counts.
func (r *UserRepo) ChannelProfile(ctx context.Context, channelID uuid.UUID) (*model.ChannelProfile, error) {
	var p model.ChannelProfile
	err := r.pool.QueryRow(ctx, `
		SELECT u.id, u.username, u.avatar, u.fullname, u.cover_image,
		       (SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = u.id),
		       (SELECT COUNT(*) FROM videos v
		        WHERE v.owner_id = u.id AND v.is_deleted = FALSE AND v.is_published = TRUE)
		FROM users u
		WHERE u.id = $1`,
		channelID).Scan(
		&p.ID, &p.Username, &p.Avatar, &p.Fullname, &p.CoverImage,
		&p.SubscriberCount, &p.VideoCount,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetStats returns aggregate platform statistics.
func (r *UserRepo) GetStats(ctx context.Context) (*model.StatsResponse, error) {
	var stats model.StatsResponse
	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM videos WHERE is_deleted = FALSE AND is_published = TRUE),
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM likes),
			(SELECT COUNT(*) FROM subscriptions),
			(SELECT COALESCE(SUM(views), 0) FROM videos WHERE is_deleted = FALSE)`).Scan(
		&stats.TotalVideos, &stats.TotalUsers, &stats.TotalLikes,
		&stats.TotalSubscriptions, &stats.TotalViews,
	)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
