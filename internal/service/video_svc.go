package service

import (
	"context"
	"errors"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Harshil0408/contentify-backend/internal/apierr"
	"github.com/Harshil0408/contentify-backend/internal/media"
	"github.com/Harshil0408/contentify-backend/internal/model"
	"github.com/Harshil0408/contentify-backend/internal/repository"
)

var errMissingDuration = errors.New("uploaded video has no duration")

// videoCatalog is the video persistence consumed by VideoService.
type videoCatalog interface {
	FindByID(ctx context.Context, videoID uuid.UUID) (*model.Video, error)
	FindDetail(ctx context.Context, videoID, viewerID uuid.UUID) (*model.VideoDetail, error)
	Insert(ctx context.Context, v *model.Video) (*model.Video, error)
	UpdateScalars(ctx context.Context, videoID uuid.UUID, u model.VideoUpdate) error
	ReplaceVideoAsset(ctx context.Context, videoID uuid.UUID, url, publicID, duration string) error
	ReplaceThumbnailAsset(ctx context.Context, videoID uuid.UUID, url, publicID string) error
	Delete(ctx context.Context, videoID uuid.UUID) error
	List(ctx context.Context, p repository.ListParams) (*model.VideoPage, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, page, limit int) (*model.VideoPage, error)
	ListSubscribedChannelVideos(ctx context.Context, channelIDs []uuid.UUID, page, limit int) (*model.VideoPage, error)
}

// viewSeeder creates the view row a detail fetch leaves behind.
type viewSeeder interface {
	Ensure(ctx context.Context, userID, videoID uuid.UUID, videoDuration float64) error
	NotifyWatchEvent(ctx context.Context, videoID uuid.UUID) error
}

type likedLister interface {
	ListLikedVideos(ctx context.Context, userID uuid.UUID) ([]model.LikedVideo, error)
}

type channelLister interface {
	ListChannelIDs(ctx context.Context, subscriberID uuid.UUID) ([]uuid.UUID, error)
}

// VideoService owns the video lifecycle: publish, detail composition,
// metadata updates, deletion and the discovery listings.
type VideoService struct {
	videos videoCatalog
	views  viewSeeder
	users  historyStore
	likes  likedLister
	subs   channelLister
	store  media.Store
}

func NewVideoService(
	videos videoCatalog,
	views viewSeeder,
	users historyStore,
	likes likedLister,
	subs channelLister,
	store media.Store,
) *VideoService {
	return &VideoService{
		videos: videos,
		views:  views,
		users:  users,
		likes:  likes,
		subs:   subs,
		store:  store,
	}
}

// GetByID composes the single-video detail for a viewer. The fetch also
// seeds the viewer's watch state: a view row is created on first watch
// and the video moves to the front of the watch history.
func (s *VideoService) GetByID(ctx context.Context, viewerID uuid.UUID, videoID string) (*model.VideoDetail, error) {
	vid, err := uuid.Parse(videoID)
	if err != nil {
		return nil, apierr.NotFound("Video not found")
	}

	detail, err := s.videos.FindDetail(ctx, vid, viewerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apierr.NotFound("Video not found")
		}
		return nil, err
	}

	duration, _ := strconv.ParseFloat(detail.Duration, 64)
	if err := s.views.Ensure(ctx, viewerID, vid, duration); err != nil {
		return nil, err
	}
	if err := s.users.TouchWatchHistory(ctx, viewerID, vid); err != nil {
		return nil, err
	}
	if err := s.views.NotifyWatchEvent(ctx, vid); err != nil {
		log.Printf("video: notify error for %s: %v", vid, err)
	}

	return detail, nil
}

// PublishInput carries the metadata and local temp-file paths for a new
// upload. Both files are required.
type PublishInput struct {
	Title         string
	Description   string
	Category      string
	Tags          []string
	Language      string
	VideoPath     string
	ThumbnailPath string
}

// Publish uploads both assets and stores the video record. The video is
// uploaded first; a thumbnail failure after a successful video upload
// surfaces as an error without rolling the video asset back.
func (s *VideoService) Publish(ctx context.Context, ownerID uuid.UUID, in PublishInput) (*model.Video, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" ||
		strings.TrimSpace(in.Category) == "" ||
		in.VideoPath == "" || in.ThumbnailPath == "" {
		return nil, apierr.InvalidArgument("All fields are required")
	}

	videoAsset, err := s.store.Upload(ctx, in.VideoPath)
	if err != nil {
		return nil, apierr.Internal("Video upload failed", err)
	}
	thumbAsset, err := s.store.Upload(ctx, in.ThumbnailPath)
	if err != nil {
		return nil, apierr.Internal("Thumbnail upload failed", err)
	}

	video := &model.Video{
		Title:             in.Title,
		Description:       in.Description,
		Category:          strings.ToLower(in.Category),
		Tags:              in.Tags,
		Language:          strings.ToLower(in.Language),
		VideoFile:         videoAsset.URL,
		VideoPublicID:     videoAsset.PublicID,
		Thumbnail:         thumbAsset.URL,
		ThumbnailPublicID: thumbAsset.PublicID,
		Duration:          strconv.Itoa(int(math.Floor(videoAsset.Duration))),
		OwnerID:           ownerID,
	}
	return s.videos.Insert(ctx, video)
}

// UpdateInput carries the optional scalar changes and optional
// replacement asset paths for an update.
type UpdateInput struct {
	Scalars       model.VideoUpdate
	VideoPath     string
	ThumbnailPath string
}

// Update applies an owner's changes. Asset replacements run as
// upload, verify, delete old, swap reference. Any failure in that
// chain aborts the replacement without persisting the new reference.
func (s *VideoService) Update(ctx context.Context, userID uuid.UUID, videoID string, in UpdateInput) (*model.Video, error) {
	vid, err := uuid.Parse(videoID)
	if err != nil {
		return nil, apierr.NotFound("Video not found")
	}

	video, err := s.videos.FindByID(ctx, vid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apierr.NotFound("Video not found")
		}
		return nil, err
	}
	if video.OwnerID != userID {
		return nil, apierr.Unauthorized("You are not allowed to update this video")
	}

	if in.VideoPath != "" {
		asset, err := s.store.Upload(ctx, in.VideoPath)
		if err != nil {
			return nil, apierr.Internal("Video upload failed", err)
		}
		if asset.Duration <= 0 {
			return nil, apierr.Internal("Video upload failed", errMissingDuration)
		}
		if video.VideoPublicID != "" {
			if err := s.store.Delete(ctx, video.VideoPublicID, media.KindVideo); err != nil {
				return nil, apierr.Internal("Video replacement failed", err)
			}
		}
		duration := strconv.Itoa(int(math.Floor(asset.Duration)))
		if err := s.videos.ReplaceVideoAsset(ctx, vid, asset.URL, asset.PublicID, duration); err != nil {
			return nil, err
		}
	}

	if in.ThumbnailPath != "" {
		asset, err := s.store.Upload(ctx, in.ThumbnailPath)
		if err != nil {
			return nil, apierr.Internal("Thumbnail upload failed", err)
		}
		if video.ThumbnailPublicID != "" {
			if err := s.store.Delete(ctx, video.ThumbnailPublicID, media.KindImage); err != nil {
				return nil, apierr.Internal("Thumbnail replacement failed", err)
			}
		}
		if err := s.videos.ReplaceThumbnailAsset(ctx, vid, asset.URL, asset.PublicID); err != nil {
			return nil, err
		}
	}

	if err := s.videos.UpdateScalars(ctx, vid, in.Scalars); err != nil {
		return nil, err
	}

	return s.videos.FindByID(ctx, vid)
}

// Delete removes the owner's video. Asset cleanup is best-effort: a
// stranded object in the media store is preferable to a record the
// owner cannot get rid of.
func (s *VideoService) Delete(ctx context.Context, userID uuid.UUID, videoID string) error {
	vid, err := uuid.Parse(videoID)
	if err != nil {
		return apierr.NotFound("Video not found")
	}

	video, err := s.videos.FindByID(ctx, vid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apierr.NotFound("Video not found")
		}
		return err
	}
	if video.OwnerID != userID {
		return apierr.Unauthorized("You are not allowed to delete this video")
	}

	if video.VideoPublicID != "" {
		if err := s.store.Delete(ctx, video.VideoPublicID, media.KindVideo); err != nil {
			log.Printf("video: asset delete failed for %s: %v", vid, err)
		}
	}
	if video.ThumbnailPublicID != "" {
		if err := s.store.Delete(ctx, video.ThumbnailPublicID, media.KindImage); err != nil {
			log.Printf("video: thumbnail delete failed for %s: %v", vid, err)
		}
	}

	return s.videos.Delete(ctx, vid)
}

// List returns a discovery page. Page and limit are normalized here so
// repositories always see sane values.
func (s *VideoService) List(ctx context.Context, p repository.ListParams) (*model.VideoPage, error) {
	normalizePage(&p.Page, &p.Limit)
	return s.videos.List(ctx, p)
}

// ListByOwner returns the caller's own videos, unpublished included.
func (s *VideoService) ListByOwner(ctx context.Context, ownerID uuid.UUID, page, limit int) (*model.VideoPage, error) {
	normalizePage(&page, &limit)
	return s.videos.ListByOwner(ctx, ownerID, page, limit)
}

// ListSubscribed returns recent videos from the channels the user
// subscribes to. No subscriptions means an empty page, not an error.
func (s *VideoService) ListSubscribed(ctx context.Context, userID uuid.UUID, page, limit int) (*model.VideoPage, error) {
	normalizePage(&page, &limit)

	channelIDs, err := s.subs.ListChannelIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(channelIDs) == 0 {
		return &model.VideoPage{Videos: []model.VideoCard{}, Page: page, Limit: limit}, nil
	}
	return s.videos.ListSubscribedChannelVideos(ctx, channelIDs, page, limit)
}

// ListLiked returns the user's liked videos, most recently liked first.
func (s *VideoService) ListLiked(ctx context.Context, userID uuid.UUID) ([]model.LikedVideo, error) {
	return s.likes.ListLikedVideos(ctx, userID)
}

func normalizePage(page, limit *int) {
	if *page < 1 {
		*page = 1
	}
	if *limit < 1 || *limit > 50 {
		*limit = 12
	}
}
