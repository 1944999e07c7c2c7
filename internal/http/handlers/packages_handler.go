package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/roamstack/tourism-api/internal/domain"
	"github.com/roamstack/tourism-api/internal/http/response"
	"github.com/roamstack/tourism-api/internal/logger"
	"github.com/roamstack/tourism-api/internal/repo/postgres"
)

const randomPackageSample = 3

type PackagesHandler struct {
	packages postgres.PackagesRepo
}

func NewPackagesHandler(packages postgres.PackagesRepo) *PackagesHandler {
	return &PackagesHandler{packages: packages}
}

func (h *PackagesHandler) List(w http.ResponseWriter, r *http.Request) {
	packages, err := h.packages.List(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to list packages", "error", err)
		response.InternalError(w, "failed to fetch packages")
		return
	}
	if packages == nil {
		packages = []domain.TourPackage{}
	}
	response.JSON(w, http.StatusOK, packages)
}

func (h *PackagesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p domain.TourPackage
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.Title == "" {
		response.BadRequest(w, "package title is required")
		return
	}

	id, err := h.packages.Insert(r.Context(), &p)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to insert package", "error", err)
		response.InternalError(w, "failed to add package")
		return
	}
	response.Inserted(w, id)
}

func (h *PackagesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		response.BadRequest(w, "invalid package id")
		return
	}

	p, err := h.packages.GetByID(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to load package", "error", err)
		response.InternalError(w, "failed to fetch package")
		return
	}
	if p == nil {
		response.NotFound(w, "package not found")
		return
	}
	response.JSON(w, http.StatusOK, p)
}

func (h *PackagesHandler) Random(w http.ResponseWriter, r *http.Request) {
	packages, err := h.packages.RandomSample(r.Context(), randomPackageSample)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to sample packages", "error", err)
		response.InternalError(w, "failed to fetch packages")
		return
	}
	if packages == nil {
		packages = []domain.TourPackage{}
	}
	response.JSON(w, http.StatusOK, packages)
}
