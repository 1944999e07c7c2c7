package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/roamstack/tourism-api/internal/domain"
	"github.com/roamstack/tourism-api/internal/http/response"
	"github.com/roamstack/tourism-api/internal/logger"
	"github.com/roamstack/tourism-api/internal/repo/postgres"
)

const randomGuideSample = 6

type GuidesHandler struct {
	guides  postgres.GuidesRepo
	stories postgres.StoriesRepo
}

func NewGuidesHandler(guides postgres.GuidesRepo, stories postgres.StoriesRepo) *GuidesHandler {
	return &GuidesHandler{guides: guides, stories: stories}
}

func (h *GuidesHandler) List(w http.ResponseWriter, r *http.Request) {
	guides, err := h.guides.List(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to list guides", "error", err)
		response.InternalError(w, "failed to fetch tour guides")
		return
	}
	if guides == nil {
		guides = []domain.TourGuide{}
	}
	response.JSON(w, http.StatusOK, guides)
}

func (h *GuidesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var g domain.TourGuide
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil || g.Name == "" {
		response.BadRequest(w, "guide name is required")
		return
	}

	id, err := h.guides.Insert(r.Context(), &g)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to insert guide", "error", err)
		response.InternalError(w, "failed to add tour guide")
		return
	}
	response.Inserted(w, id)
}

// Profile returns a guide together with the stories they are featured in.
func (h *GuidesHandler) Profile(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		response.BadRequest(w, "invalid guide id")
		return
	}

	guide, err := h.guides.GetByID(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to load guide", "error", err)
		response.InternalError(w, "failed to fetch tour guide details")
		return
	}
	if guide == nil {
		response.NotFound(w, "tour guide not found")
		return
	}

	stories, err := h.stories.ListByGuideID(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to load guide stories", "error", err)
		response.InternalError(w, "failed to fetch tour guide details")
		return
	}
	if stories == nil {
		stories = []domain.Story{}
	}

	response.JSON(w, http.StatusOK, domain.GuideProfile{Guide: guide, Stories: stories})
}

func (h *GuidesHandler) Random(w http.ResponseWriter, r *http.Request) {
	guides, err := h.guides.RandomSample(r.Context(), randomGuideSample)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to sample guides", "error", err)
		response.InternalError(w, "failed to fetch tour guides")
		return
	}
	if guides == nil {
		guides = []domain.TourGuide{}
	}
	response.JSON(w, http.StatusOK, guides)
}
