package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/rohits-web03/meshvault/internal/api/services"
	"github.com/rohits-web03/meshvault/internal/utils"
)

type CategoryHandler struct {
	categories *services.CategoryService
	log        *zap.Logger
}

func NewCategoryHandler(categories *services.CategoryService, log *zap.Logger) *CategoryHandler {
	return &CategoryHandler{categories: categories, log: log}
}

// List godoc
// @Summary List categories
// @Tags Categories
// @Produce json
// @Success 200 {object} utils.Payload{data=[]models.Category}
// @Failure 500 {object} utils.Payload
// @Router /api/categories [get]
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSONResponse(w, http.StatusOK, utils.Payload{Success: true, Data: categories})
}

// Fields godoc
// @Summary List the custom fields of a category
// @Tags Categories
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} utils.Payload{data=[]services.FieldDefinition}
// @Failure 404 {object} utils.Payload
// @Router /api/categories/{slug}/fields [get]
func (h *CategoryHandler) Fields(w http.ResponseWriter, r *http.Request) {
	fields, err := h.categories.Fields(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSONResponse(w, http.StatusOK, utils.Payload{Success: true, Data: fields})
}
