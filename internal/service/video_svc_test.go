package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harshil0408/contentify-backend/internal/apierr"
	"github.com/Harshil0408/contentify-backend/internal/media"
	"github.com/Harshil0408/contentify-backend/internal/model"
	"github.com/Harshil0408/contentify-backend/internal/repository"
)

// opLog records store and catalog calls in order, so tests can assert
// the upload, delete, swap sequence.
type opLog struct {
	ops []string
}

func (l *opLog) add(op string) {
	l.ops = append(l.ops, op)
}

type fakeMediaStore struct {
	log       *opLog
	assets    []media.Asset // returned by Upload in order
	uploadErr error
	deleteErr error
	uploads   int
}

func (f *fakeMediaStore) Upload(_ context.Context, _ string) (*media.Asset, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	a := f.assets[f.uploads%len(f.assets)]
	f.uploads++
	if f.log != nil {
		f.log.add("upload")
	}
	return &a, nil
}

func (f *fakeMediaStore) Delete(_ context.Context, publicID string, _ media.Kind) error {
	if f.log != nil {
		f.log.add("delete " + publicID)
	}
	return f.deleteErr
}

// fakeVideoCatalog is an in-memory videoCatalog.
type fakeVideoCatalog struct {
	log      *opLog
	videos   map[uuid.UUID]*model.Video
	inserted *model.Video
}

func newFakeVideoCatalog() *fakeVideoCatalog {
	return &fakeVideoCatalog{videos: make(map[uuid.UUID]*model.Video)}
}

func (f *fakeVideoCatalog) FindByID(_ context.Context, videoID uuid.UUID) (*model.Video, error) {
	v, ok := f.videos[videoID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *v
	return &copied, nil
}

func (f *fakeVideoCatalog) FindDetail(_ context.Context, _, _ uuid.UUID) (*model.VideoDetail, error) {
	return nil, pgx.ErrNoRows
}

func (f *fakeVideoCatalog) Insert(_ context.Context, v *model.Video) (*model.Video, error) {
	v.ID = uuid.New()
	f.videos[v.ID] = v
	f.inserted = v
	return v, nil
}

func (f *fakeVideoCatalog) UpdateScalars(_ context.Context, _ uuid.UUID, _ model.VideoUpdate) error {
	if f.log != nil {
		f.log.add("scalars")
	}
	return nil
}

func (f *fakeVideoCatalog) ReplaceVideoAsset(_ context.Context, videoID uuid.UUID, url, publicID, duration string) error {
	if f.log != nil {
		f.log.add("replace video")
	}
	v := f.videos[videoID]
	v.VideoFile = url
	v.VideoPublicID = publicID
	v.Duration = duration
	return nil
}

func (f *fakeVideoCatalog) ReplaceThumbnailAsset(_ context.Context, videoID uuid.UUID, url, publicID string) error {
	if f.log != nil {
		f.log.add("replace thumbnail")
	}
	v := f.videos[videoID]
	v.Thumbnail = url
	v.ThumbnailPublicID = publicID
	return nil
}

func (f *fakeVideoCatalog) Delete(_ context.Context, videoID uuid.UUID) error {
	delete(f.videos, videoID)
	return nil
}

func (f *fakeVideoCatalog) List(_ context.Context, _ repository.ListParams) (*model.VideoPage, error) {
	return &model.VideoPage{}, nil
}

func (f *fakeVideoCatalog) ListByOwner(_ context.Context, _ uuid.UUID, _, _ int) (*model.VideoPage, error) {
	return &model.VideoPage{}, nil
}

func (f *fakeVideoCatalog) ListSubscribedChannelVideos(_ context.Context, _ []uuid.UUID, _, _ int) (*model.VideoPage, error) {
	return &model.VideoPage{}, nil
}

func TestPublish_TagsOptional(t *testing.T) {
	store := &fakeMediaStore{assets: []media.Asset{
		{URL: "https://cdn.example.com/v.mp4", PublicID: "vid1", Duration: 42.7},
		{URL: "https://cdn.example.com/t.png", PublicID: "thumb1"},
	}}
	catalog := newFakeVideoCatalog()
	svc := NewVideoService(catalog, nil, nil, nil, nil, store)

	video, err := svc.Publish(context.Background(), uuid.New(), PublishInput{
		Title:         "First ride",
		Description:   "Morning descent",
		Category:      "Travel",
		VideoPath:     "/tmp/v.mp4",
		ThumbnailPath: "/tmp/t.png",
	})
	require.NoError(t, err)

	assert.Empty(t, video.Tags)
	assert.Equal(t, "42", video.Duration)
	assert.Equal(t, "travel", video.Category)
	assert.Equal(t, 2, store.uploads)
}

func TestPublish_MissingRequiredFields(t *testing.T) {
	complete := PublishInput{
		Title:         "First ride",
		Description:   "Morning descent",
		Category:      "travel",
		VideoPath:     "/tmp/v.mp4",
		ThumbnailPath: "/tmp/t.png",
	}

	tests := []struct {
		name   string
		mutate func(*PublishInput)
	}{
		{"no title", func(in *PublishInput) { in.Title = " " }},
		{"no description", func(in *PublishInput) { in.Description = "" }},
		{"no category", func(in *PublishInput) { in.Category = "" }},
		{"no video file", func(in *PublishInput) { in.VideoPath = "" }},
		{"no thumbnail", func(in *PublishInput) { in.ThumbnailPath = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeMediaStore{assets: []media.Asset{{URL: "u", PublicID: "p", Duration: 1}}}
			svc := NewVideoService(newFakeVideoCatalog(), nil, nil, nil, nil, store)

			in := complete
			tt.mutate(&in)
			_, err := svc.Publish(context.Background(), uuid.New(), in)
			assert.True(t, apierr.IsKind(err, apierr.KindInvalidArgument))
			assert.Zero(t, store.uploads)
		})
	}
}

func TestUpdate_ReplacementDeletesOldBeforeSwap(t *testing.T) {
	owner := uuid.New()
	log := &opLog{}

	catalog := newFakeVideoCatalog()
	catalog.log = log
	videoID := uuid.New()
	catalog.videos[videoID] = &model.Video{
		ID:            videoID,
		OwnerID:       owner,
		VideoPublicID: "old-vid",
	}

	store := &fakeMediaStore{
		log:    log,
		assets: []media.Asset{{URL: "https://cdn.example.com/new.mp4", PublicID: "new-vid", Duration: 30}},
	}
	svc := NewVideoService(catalog, nil, nil, nil, nil, store)

	updated, err := svc.Update(context.Background(), owner, videoID.String(), UpdateInput{VideoPath: "/tmp/new.mp4"})
	require.NoError(t, err)

	assert.Equal(t, []string{"upload", "delete old-vid", "replace video", "scalars"}, log.ops)
	assert.Equal(t, "new-vid", updated.VideoPublicID)
	assert.Equal(t, "30", updated.Duration)
}

func TestUpdate_OldAssetDeleteFailureAborts(t *testing.T) {
	owner := uuid.New()
	log := &opLog{}

	catalog := newFakeVideoCatalog()
	catalog.log = log
	videoID := uuid.New()
	catalog.videos[videoID] = &model.Video{
		ID:            videoID,
		OwnerID:       owner,
		VideoPublicID: "old-vid",
	}

	store := &fakeMediaStore{
		log:       log,
		assets:    []media.Asset{{URL: "https://cdn.example.com/new.mp4", PublicID: "new-vid", Duration: 30}},
		deleteErr: errors.New("destroy: rate limited"),
	}
	svc := NewVideoService(catalog, nil, nil, nil, nil, store)

	_, err := svc.Update(context.Background(), owner, videoID.String(), UpdateInput{VideoPath: "/tmp/new.mp4"})
	assert.True(t, apierr.IsKind(err, apierr.KindInternal))

	// The old reference must survive a failed replacement.
	assert.NotContains(t, log.ops, "replace video")
	assert.Equal(t, "old-vid", catalog.videos[videoID].VideoPublicID)
}

func TestUpdate_ZeroDurationReplacementRejected(t *testing.T) {
	owner := uuid.New()
	log := &opLog{}

	catalog := newFakeVideoCatalog()
	catalog.log = log
	videoID := uuid.New()
	catalog.videos[videoID] = &model.Video{
		ID:            videoID,
		OwnerID:       owner,
		VideoPublicID: "old-vid",
	}

	store := &fakeMediaStore{
		log:    log,
		assets: []media.Asset{{URL: "https://cdn.example.com/new.mp4", PublicID: "new-vid"}},
	}
	svc := NewVideoService(catalog, nil, nil, nil, nil, store)

	_, err := svc.Update(context.Background(), owner, videoID.String(), UpdateInput{VideoPath: "/tmp/new.mp4"})
	assert.True(t, apierr.IsKind(err, apierr.KindInternal))
	assert.Equal(t, []string{"upload"}, log.ops)
}

func TestUpdate_NotOwner(t *testing.T) {
	catalog := newFakeVideoCatalog()
	videoID := uuid.New()
	catalog.videos[videoID] = &model.Video{ID: videoID, OwnerID: uuid.New()}

	svc := NewVideoService(catalog, nil, nil, nil, nil, &fakeMediaStore{})

	_, err := svc.Update(context.Background(), uuid.New(), videoID.String(), UpdateInput{})
	assert.True(t, apierr.IsKind(err, apierr.KindUnauthorized))
}
