package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/roamstack/tourism-api/internal/domain"
	"github.com/roamstack/tourism-api/internal/http/response"
	"github.com/roamstack/tourism-api/internal/logger"
	"github.com/roamstack/tourism-api/internal/platform/events"
	"github.com/roamstack/tourism-api/internal/platform/mailer"
	"github.com/roamstack/tourism-api/internal/repo/postgres"
)

type RegistrationsHandler struct {
	registrations postgres.RegistrationsRepo
	bus           events.Publisher
	mailer        mailer.Service
}

func NewRegistrationsHandler(registrations postgres.RegistrationsRepo, bus events.Publisher, m mailer.Service) *RegistrationsHandler {
	return &RegistrationsHandler{registrations: registrations, bus: bus, mailer: m}
}

func (h *RegistrationsHandler) Register(w http.ResponseWriter, r *http.Request) {
	var reg domain.EventRegistration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil ||
		reg.Name == "" || reg.Email == "" || reg.Contact == "" {
		response.BadRequest(w, "name, email and contact are required")
		return
	}

	id, err := h.registrations.Insert(r.Context(), &reg)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to insert registration", "error", err)
		response.InternalError(w, "failed to register")
		return
	}
	if id == 0 {
		response.JSON(w, http.StatusOK, response.InsertAck{Message: "already registered", InsertedID: nil})
		return
	}

	event := events.EventRegisteredEvent{
		Name:         reg.Name,
		Email:        reg.Email,
		RegisteredAt: time.Now(),
	}
	if err := h.bus.Publish(r.Context(), events.EventRegistered, event); err != nil {
		logger.ErrorContext(r.Context(), "failed to publish registration event", "error", err)
	}

	text := fmt.Sprintf("Hi %s, your event registration is confirmed. We will reach you at %s.", reg.Name, reg.Contact)
	if _, err := h.mailer.Send(reg.Email, reg.Name, "Event registration confirmed", text, ""); err != nil {
		logger.WarnContext(r.Context(), "registration confirmation email not sent", "error", err)
	}

	response.JSON(w, http.StatusCreated, response.InsertAck{InsertedID: &id})
}
