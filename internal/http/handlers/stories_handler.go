package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/roamstack/tourism-api/internal/domain"
	"github.com/roamstack/tourism-api/internal/http/response"
	"github.com/roamstack/tourism-api/internal/logger"
	"github.com/roamstack/tourism-api/internal/repo/postgres"
)

const randomStorySample = 4

type StoriesHandler struct {
	stories postgres.StoriesRepo
}

func NewStoriesHandler(stories postgres.StoriesRepo) *StoriesHandler {
	return &StoriesHandler{stories: stories}
}

func (h *StoriesHandler) ListByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	stories, err := h.stories.ListByEmail(r.Context(), email)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to list stories", "error", err)
		response.InternalError(w, "failed to fetch stories")
		return
	}
	h.writeStories(w, stories)
}

func (h *StoriesHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	stories, err := h.stories.ListAll(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to list stories", "error", err)
		response.InternalError(w, "failed to fetch stories")
		return
	}
	h.writeStories(w, stories)
}

func (h *StoriesHandler) Random(w http.ResponseWriter, r *http.Request) {
	stories, err := h.stories.RandomSample(r.Context(), randomStorySample)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to sample stories", "error", err)
		response.InternalError(w, "failed to fetch stories")
		return
	}
	h.writeStories(w, stories)
}

func (h *StoriesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		response.BadRequest(w, "invalid story id")
		return
	}

	s, err := h.stories.GetByID(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to load story", "error", err)
		response.InternalError(w, "failed to fetch story")
		return
	}
	if s == nil {
		response.NotFound(w, "story not found")
		return
	}
	response.JSON(w, http.StatusOK, s)
}

func (h *StoriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var s domain.Story
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil || s.Title == "" {
		response.BadRequest(w, "story title is required")
		return
	}

	id, err := h.stories.Insert(r.Context(), &s)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to insert story", "error", err)
		response.InternalError(w, "failed to add story")
		return
	}
	response.Inserted(w, id)
}

// Update rewrites title and description and appends any newly uploaded
// images to the story's gallery.
func (h *StoriesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		response.BadRequest(w, "invalid story id")
		return
	}

	var req domain.StoryUpdateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid payload")
		return
	}

	count, err := h.stories.Update(r.Context(), id, &req)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to update story", "error", err)
		response.InternalError(w, "failed to update story")
		return
	}
	response.Updated(w, count, count)
}

func (h *StoriesHandler) RemoveImage(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		response.BadRequest(w, "invalid story id")
		return
	}

	var in struct {
		ImageURL string `json:"imageUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.ImageURL == "" {
		response.BadRequest(w, "imageUrl is required")
		return
	}

	count, err := h.stories.RemoveImage(r.Context(), id, in.ImageURL)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to remove story image", "error", err)
		response.InternalError(w, "failed to remove image")
		return
	}
	response.Updated(w, count, count)
}

func (h *StoriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		response.BadRequest(w, "invalid story id")
		return
	}

	count, err := h.stories.DeleteByID(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to delete story", "error", err)
		response.InternalError(w, "failed to delete story")
		return
	}
	response.Deleted(w, count)
}

func (h *StoriesHandler) writeStories(w http.ResponseWriter, stories []domain.Story) {
	if stories == nil {
		stories = []domain.Story{}
	}
	response.JSON(w, http.StatusOK, stories)
}
