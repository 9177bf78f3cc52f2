package handler

import (
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Harshil0408/contentify-backend/internal/apierr"
	"github.com/Harshil0408/contentify-backend/internal/middleware"
	"github.com/Harshil0408/contentify-backend/internal/model"
	"github.com/Harshil0408/contentify-backend/internal/repository"
	"github.com/Harshil0408/contentify-backend/internal/service"
)

// VideoHandler serves the /video group: detail, publish, update,
// delete, listings, recommendations and watch state.
type VideoHandler struct {
	videos    *service.VideoService
	watch     *service.WatchService
	recommend *service.RecommendService
	tmpDir    string
}

func NewVideoHandler(videos *service.VideoService, watch *service.WatchService, recommend *service.RecommendService, tmpDir string) *VideoHandler {
	return &VideoHandler{videos: videos, watch: watch, recommend: recommend, tmpDir: tmpDir}
}

// saveUpload writes a multipart file into the temp dir under a unique
// name and returns the local path.
func (h *VideoHandler) saveUpload(c fiber.Ctx, fh *multipart.FileHeader) (string, error) {
	path := filepath.Join(h.tmpDir, uuid.NewString()+filepath.Ext(fh.Filename))
	if err := c.SaveFile(fh, path); err != nil {
		return "", err
	}
	return path, nil
}

// List handles GET /video/
func (h *VideoHandler) List(c fiber.Ctx) error {
	p := repository.ListParams{
		Page:     fiber.Query(c, "page", 1),
		Limit:    fiber.Query(c, "limit", 12),
		Query:    fiber.Query[string](c, "query"),
		SortBy:   fiber.Query(c, "sortBy", "createdAt"),
		SortDesc: fiber.Query(c, "sortType", "desc") != "asc",
	}
	if owner := fiber.Query[string](c, "userId"); owner != "" {
		ownerID, err := uuid.Parse(owner)
		if err != nil {
			return fail(c, apierr.InvalidArgument("Invalid userId"))
		}
		p.OwnerID = &ownerID
	}

	page, err := h.videos.List(c.Context(), p)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, page, "Videos fetched successfully")
}

// GetByID handles GET /video/:videoId
func (h *VideoHandler) GetByID(c fiber.Ctx) error {
	userID, _ := middleware.UserID(c)

	detail, err := h.videos.GetByID(c.Context(), userID, c.Params("videoId"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, detail, "Video fetched successfully")
}

// Publish handles POST /video/publish-video (multipart)
func (h *VideoHandler) Publish(c fiber.Ctx) error {
	userID, _ := middleware.UserID(c)

	title, msg := middleware.ValidateTitle(c.FormValue("title"))
	if msg != "" {
		return fail(c, apierr.InvalidArgument(msg))
	}
	description, msg := middleware.ValidateDescription(c.FormValue("description"))
	if msg != "" {
		return fail(c, apierr.InvalidArgument(msg))
	}
	category, msg := middleware.ValidateCategory(c.FormValue("category"))
	if msg != "" {
		return fail(c, apierr.InvalidArgument(msg))
	}
	tags, msg := middleware.ValidateTags(splitTags(c.FormValue("tags")))
	if msg != "" {
		return fail(c, apierr.InvalidArgument(msg))
	}

	in := service.PublishInput{
		Title:       title,
		Description: description,
		Category:    category,
		Tags:        tags,
		Language:    c.FormValue("language"),
	}

	if fh, err := c.FormFile("videoFile"); err == nil {
		path, err := h.saveUpload(c, fh)
		if err != nil {
			return fail(c, err)
		}
		in.VideoPath = path
	}
	if fh, err := c.FormFile("thumbnail"); err == nil {
		path, err := h.saveUpload(c, fh)
		if err != nil {
			return fail(c, err)
		}
		in.ThumbnailPath = path
	}

	video, err := h.videos.Publish(c.Context(), userID, in)
	if err != nil {
		return fail(c, err)
	}
	Metrics.UploadsTotal.Inc()
	return respond(c, fiber.StatusCreated, video, "Video published successfully")
}

// Update handles PATCH /video/:videoId (multipart or JSON)
func (h *VideoHandler) Update(c fiber.Ctx) error {
	userID, _ := middleware.UserID(c)

	var in service.UpdateInput
	if strings.HasPrefix(c.Get("Content-Type"), "multipart/form-data") {
		form, err := c.MultipartForm()
		if err != nil {
			return fail(c, apierr.InvalidArgument("Invalid form data"))
		}
		if msg := scalarsFromForm(form, &in.Scalars); msg != "" {
			return fail(c, apierr.InvalidArgument(msg))
		}
		if fh, err := c.FormFile("videoFile"); err == nil {
			path, err := h.saveUpload(c, fh)
			if err != nil {
				return fail(c, err)
			}
			in.VideoPath = path
		}
		if fh, err := c.FormFile("thumbnail"); err == nil {
			path, err := h.saveUpload(c, fh)
			if err != nil {
				return fail(c, err)
			}
			in.ThumbnailPath = path
		}
	} else {
		if err := c.Bind().Body(&in.Scalars); err != nil {
			return fail(c, apierr.InvalidArgument("Invalid request body"))
		}
	}

	video, err := h.videos.Update(c.Context(), userID, c.Params("videoId"), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, video, "Video updated successfully")
}

// Delete handles DELETE /video/:videoId
func (h *VideoHandler) Delete(c fiber.Ctx) error {
	userID, _ := middleware.UserID(c)

	if err := h.videos.Delete(c.Context(), userID, c.Params("videoId")); err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, nil, "Video deleted successfully")
}

// Recommend handles GET /video/recommend-video?currentVideoId=
func (h *VideoHandler) Recommend(c fiber.Ctx) error {
	userID, _ := middleware.UserID(c)

	cards, err := h.recommend.Recommend(c.Context(), userID, fiber.Query[string](c, "currentVideoId"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, cards, "Recommended videos fetched successfully")
}

// GetWatchHistory handles GET /video/video/getWatchHistory
func (h *VideoHandler) GetWatchHistory(c fiber.Ctx) error {
	userID, _ := middleware.UserID(c)

	history, err := h.watch.GetWatchHistory(c.Context(), userID)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, history, "Watch history fetched successfully")
}

// ListLiked handles GET /video/like-videos/user
func (h *VideoHandler) ListLiked(c fiber.Ctx) error {
	userID, _ := middleware.UserID(c)

	liked, err := h.videos.ListLiked(c.Context(), userID)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, liked, "Liked videos fetched successfully")
}

// ListOwn handles GET /video/user/user-videos
func (h *VideoHandler) ListOwn(c fiber.Ctx) error {
	userID, _ := middleware.UserID(c)

	page, err := h.videos.ListByOwner(c.Context(), userID,
		fiber.Query(c, "page", 1), fiber.Query(c, "limit", 12))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, page, "User videos fetched successfully")
}

// ListSubscribed handles GET /video/subscribed/videos
func (h *VideoHandler) ListSubscribed(c fiber.Ctx) error {
	userID, _ := middleware.UserID(c)

	page, err := h.videos.ListSubscribed(c.Context(), userID,
		fiber.Query(c, "page", 1), fiber.Query(c, "limit", 12))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, page, "Subscribed videos fetched successfully")
}

type progressRequest struct {
	VideoID     string  `json:"videoId"`
	WatchedTime float64 `json:"watchedTime"`
}

// UpdateProgress handles PATCH /video/update/watch-progress
func (h *VideoHandler) UpdateProgress(c fiber.Ctx) error {
	userID, _ := middleware.UserID(c)

	var req progressRequest
	if err := c.Bind().Body(&req); err != nil {
		return fail(c, apierr.InvalidArgument("Invalid request body"))
	}
	if req.WatchedTime < 0 {
		return fail(c, apierr.InvalidArgument("watchedTime must be non-negative"))
	}

	view, err := h.watch.RecordProgress(c.Context(), userID, req.VideoID, req.WatchedTime)
	if err != nil {
		return fail(c, err)
	}
	Metrics.WatchEventsTotal.Inc()
	return respond(c, fiber.StatusOK, view, "Watch progress updated successfully")
}

// GetProgress handles GET /video/watch-progress/:videoId
func (h *VideoHandler) GetProgress(c fiber.Ctx) error {
	userID, _ := middleware.UserID(c)

	view, err := h.watch.GetProgress(c.Context(), userID, c.Params("videoId"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, view, "Watch progress fetched successfully")
}

// GetAllProgress handles GET /video/watch-progress
func (h *VideoHandler) GetAllProgress(c fiber.Ctx) error {
	userID, _ := middleware.UserID(c)

	progress, err := h.watch.GetAllProgress(c.Context(), userID)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, progress, "Watch progress fetched successfully")
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

// scalarsFromForm maps present multipart fields onto the update
// allow-list. Absent keys stay nil so the repository skips them.
func scalarsFromForm(form *multipart.Form, u *model.VideoUpdate) string {
	if vals, ok := form.Value["title"]; ok && len(vals) > 0 {
		title, msg := middleware.ValidateTitle(vals[0])
		if msg != "" {
			return msg
		}
		u.Title = &title
	}
	if vals, ok := form.Value["description"]; ok && len(vals) > 0 {
		desc, msg := middleware.ValidateDescription(vals[0])
		if msg != "" {
			return msg
		}
		u.Description = &desc
	}
	if vals, ok := form.Value["category"]; ok && len(vals) > 0 {
		category, msg := middleware.ValidateCategory(vals[0])
		if msg != "" {
			return msg
		}
		u.Category = &category
	}
	if vals, ok := form.Value["tags"]; ok && len(vals) > 0 {
		tags, msg := middleware.ValidateTags(splitTags(vals[0]))
		if msg != "" {
			return msg
		}
		u.Tags = tags
	}
	if vals, ok := form.Value["language"]; ok && len(vals) > 0 {
		lang := vals[0]
		u.Language = &lang
	}
	if vals, ok := form.Value["isPrivate"]; ok && len(vals) > 0 {
		private := vals[0] == "true"
		u.IsPrivate = &private
	}
	return ""
}
