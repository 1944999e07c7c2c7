package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/roamstack/tourism-api/internal/domain"
	"github.com/roamstack/tourism-api/internal/http/response"
	"github.com/roamstack/tourism-api/internal/logger"
	"github.com/roamstack/tourism-api/internal/platform/events"
	"github.com/roamstack/tourism-api/internal/repo/postgres"
)

type ApplicationsHandler struct {
	applications postgres.ApplicationsRepo
	bus          events.Publisher
}

func NewApplicationsHandler(applications postgres.ApplicationsRepo, bus events.Publisher) *ApplicationsHandler {
	return &ApplicationsHandler{applications: applications, bus: bus}
}

func (h *ApplicationsHandler) List(w http.ResponseWriter, r *http.Request) {
	apps, err := h.applications.List(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to list applications", "error", err)
		response.InternalError(w, "failed to fetch applications")
		return
	}
	if apps == nil {
		apps = []domain.GuideApplication{}
	}
	response.JSON(w, http.StatusOK, apps)
}

// Submit stores a guide application. One application per email: a repeat
// submission acknowledges with a null insertedId.
func (h *ApplicationsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var a domain.GuideApplication
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil || a.Email == "" {
		response.BadRequest(w, "email is required")
		return
	}

	id, err := h.applications.Insert(r.Context(), &a)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to insert application", "error", err)
		response.InternalError(w, "failed to submit application")
		return
	}
	if id == 0 {
		response.JSON(w, http.StatusOK, response.InsertAck{Message: "application already exists", InsertedID: nil})
		return
	}

	event := events.ApplicationSubmittedEvent{
		Email:       a.Email,
		Title:       a.Title,
		SubmittedAt: time.Now(),
	}
	if err := h.bus.Publish(r.Context(), events.ApplicationSubmitted, event); err != nil {
		logger.ErrorContext(r.Context(), "failed to publish application event", "error", err)
	}

	response.Inserted(w, id)
}

// Withdraw deletes the application keyed by email, covering both applicant
// withdrawal and admin approval/rejection.
func (h *ApplicationsHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Email == "" {
		response.BadRequest(w, "email is required")
		return
	}

	count, err := h.applications.DeleteByEmail(r.Context(), in.Email)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to delete application", "error", err)
		response.InternalError(w, "failed to delete application")
		return
	}
	response.Deleted(w, count)
}
