package handlers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rohits-web03/meshvault/internal/api/services"
	"github.com/rohits-web03/meshvault/internal/apperrors"
	"github.com/rohits-web03/meshvault/internal/repositories"
	"github.com/rohits-web03/meshvault/internal/utils"
)

type ModelHandler struct {
	models *services.ModelService
	log    *zap.Logger
}

func NewModelHandler(models *services.ModelService, log *zap.Logger) *ModelHandler {
	return &ModelHandler{models: models, log: log}
}

// ListMine godoc
// @Summary List the caller's models
// @Tags Models
// @Produce json
// @Param category query string false "Category id"
// @Param isPublic query bool false "Visibility filter"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 20, max 100)"
// @Success 200 {object} utils.Payload{data=[]services.ModelSummary}
// @Failure 401 {object} utils.Payload
// @Router /api/models [get]
func (h *ModelHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	owner, err := requireCaller(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	q := r.URL.Query()
	var filter repositories.OwnerFilter
	if raw := q.Get("category"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, h.log, apperrors.InvalidArgument("Invalid category"))
			return
		}
		filter.CategoryID = &id
	}
	if raw := q.Get("isPublic"); raw != "" {
		public, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, h.log, apperrors.InvalidArgument("Invalid isPublic"))
			return
		}
		filter.IsPublic = &public
	}

	page, limit := pageParams(r)
	result, err := h.models.ListByOwner(r.Context(), owner, filter, page, limit)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success:    true,
		Data:       result.Items,
		Pagination: &result.Pagination,
	})
}

// Create godoc
// @Summary Create a model record for an uploaded file
// @Tags Models
// @Accept json
// @Produce json
// @Param body body services.CreateModelInput true "Model"
// @Success 201 {object} utils.Payload{data=services.ModelDetail}
// @Failure 400 {object} utils.Payload
// @Failure 401 {object} utils.Payload
// @Router /api/models [post]
func (h *ModelHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, err := requireCaller(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	var input services.CreateModelInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, h.log, err)
		return
	}

	model, err := h.models.Create(r.Context(), owner, input)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSONResponse(w, http.StatusCreated, utils.Payload{Success: true, Data: model})
}

// ListPublic godoc
// @Summary Browse public models
// @Tags Models
// @Produce json
// @Param category query string false "Category slug"
// @Param search query string false "Case-sensitive title substring"
// @Param sortBy query string false "createdAt, viewCount or downloadCount"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 20, max 100)"
// @Success 200 {object} utils.Payload{data=[]services.ModelSummary}
// @Failure 400 {object} utils.Payload
// @Router /api/models/public [get]
func (h *ModelHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := services.PublicQuery{
		CategorySlug: q.Get("category"),
		Search:       q.Get("search"),
		SortBy:       q.Get("sortBy"),
	}

	page, limit := pageParams(r)
	result, err := h.models.ListPublic(r.Context(), query, page, limit)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success:    true,
		Data:       result.Items,
		Pagination: &result.Pagination,
	})
}

// Get godoc
// @Summary Fetch one model
// @Description Private models are only visible to their owner. Reads by anyone else count as a view.
// @Tags Models
// @Produce json
// @Param id path string true "Model id"
// @Success 200 {object} utils.Payload{data=services.ModelDetail}
// @Failure 403 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /api/models/{id} [get]
func (h *ModelHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := modelID(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	model, err := h.models.Get(r.Context(), id, callerID(r))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSONResponse(w, http.StatusOK, utils.Payload{Success: true, Data: model})
}

// Update godoc
// @Summary Partially update a model
// @Tags Models
// @Accept json
// @Produce json
// @Param id path string true "Model id"
// @Param body body services.UpdateModelInput true "Fields to change"
// @Success 200 {object} utils.Payload{data=services.ModelDetail}
// @Failure 400 {object} utils.Payload
// @Failure 401 {object} utils.Payload
// @Failure 403 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /api/models/{id} [put]
func (h *ModelHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, err := requireCaller(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	id, err := modelID(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	var input services.UpdateModelInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, h.log, err)
		return
	}

	model, err := h.models.Update(r.Context(), id, caller, input)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSONResponse(w, http.StatusOK, utils.Payload{Success: true, Data: model})
}

// Delete godoc
// @Summary Delete a model and its files
// @Tags Models
// @Produce json
// @Param id path string true "Model id"
// @Success 200 {object} utils.Payload
// @Failure 401 {object} utils.Payload
// @Failure 403 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /api/models/{id} [delete]
func (h *ModelHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, err := requireCaller(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	id, err := modelID(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	if err := h.models.Delete(r.Context(), id, caller); err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSONResponse(w, http.StatusOK, utils.Payload{Success: true, Message: "Model deleted successfully"})
}

// Download godoc
// @Summary Get a temporary download link for a model file
// @Tags Models
// @Produce json
// @Param id path string true "Model id"
// @Success 200 {object} utils.Payload{data=services.DownloadLink}
// @Failure 403 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Failure 502 {object} utils.Payload
// @Router /api/models/{id}/download [get]
func (h *ModelHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := modelID(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	link, err := h.models.Download(r.Context(), id, callerID(r))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSONResponse(w, http.StatusOK, utils.Payload{Success: true, Data: link})
}
