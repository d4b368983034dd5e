package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/rohits-web03/meshvault/internal/api/services"
	"github.com/rohits-web03/meshvault/internal/apperrors"
	"github.com/rohits-web03/meshvault/internal/storage"
	"github.com/rohits-web03/meshvault/internal/utils"
)

const (
	// Model ceiling plus room for the multipart envelope and form fields.
	defaultMaxUploadBody = storage.MaxModelSize + 1<<20
	multipartMemory      = 32 << 20
)

type UploadHandler struct {
	uploader *services.Uploader
	log      *zap.Logger
	maxBody  int64
}

func NewUploadHandler(uploader *services.Uploader, log *zap.Logger) *UploadHandler {
	return &UploadHandler{uploader: uploader, log: log, maxBody: defaultMaxUploadBody}
}

// Upload godoc
// @Summary Upload a model file or thumbnail
// @Description Stores the file and returns its key and URL. Create the model record with POST /api/models afterwards.
// @Tags Models
// @Accept multipart/form-data
// @Produce json
// @Param type formData string true "model or thumbnail"
// @Param file formData file true "File to upload"
// @Param modelId formData string false "Model or temporary id, required for thumbnails"
// @Success 200 {object} utils.Payload{data=services.UploadResult}
// @Failure 400 {object} utils.Payload
// @Failure 401 {object} utils.Payload
// @Failure 502 {object} utils.Payload
// @Router /api/models/upload [post]
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	owner, err := requireCaller(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	tooLarge := apperrors.New(apperrors.CodeFileTooLarge, "File size exceeds 100MB limit")
	if r.ContentLength > h.maxBody {
		writeError(w, h.log, tooLarge)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, h.log, tooLarge)
			return
		}
		writeError(w, h.log, apperrors.Wrap(apperrors.CodeInvalidArgument, "Invalid upload form", err))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil || header.Size == 0 {
		writeError(w, h.log, apperrors.InvalidArgument("No file provided"))
		return
	}
	defer file.Close()

	var result *services.UploadResult
	switch r.FormValue("type") {
	case "model":
		result, err = h.uploader.UploadModelFile(r.Context(), file, header.Filename, header.Size, owner)
	case "thumbnail":
		result, err = h.uploader.UploadThumbnail(r.Context(), file, header.Filename, header.Size, r.FormValue("modelId"), owner)
	default:
		err = apperrors.InvalidArgument("Invalid upload type")
	}
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSONResponse(w, http.StatusOK, utils.Payload{Success: true, Data: result})
}
