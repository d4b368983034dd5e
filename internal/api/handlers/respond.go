package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rohits-web03/meshvault/internal/api/middleware"
	"github.com/rohits-web03/meshvault/internal/apperrors"
	"github.com/rohits-web03/meshvault/internal/utils"
)

const maxJSONBody = 1 << 20

// writeError renders err as the failure envelope. Unexpected errors are logged.
func writeError(w http.ResponseWriter, log *zap.Logger, err error) {
	status := apperrors.HTTPStatus(err)
	message := "Internal server error"
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message()
	}
	if status >= http.StatusInternalServerError {
		log.Error("request failed", zap.Int("status", status), zap.Error(err))
	}
	utils.ErrorResponse(w, status, message)
}

// decodeJSON reads a single JSON object, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperrors.Wrap(apperrors.CodeInvalidArgument, "Invalid input", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return apperrors.InvalidArgument("Invalid input")
	}
	return nil
}

// callerID is the authenticated caller, or uuid.Nil for anonymous requests.
func callerID(r *http.Request) uuid.UUID {
	if p, ok := middleware.PrincipalFromContext(r.Context()); ok {
		return p.ID
	}
	return uuid.Nil
}

func requireCaller(r *http.Request) (uuid.UUID, error) {
	id := callerID(r)
	if id == uuid.Nil {
		return uuid.Nil, apperrors.Unauthenticated()
	}
	return id, nil
}

// modelID parses the {id} path value. Malformed ids cannot exist, so they are reported as not found.
func modelID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, apperrors.NotFound("Model not found")
	}
	return id, nil
}

// pageParams reads page and limit, leaving malformed values to the service defaults.
func pageParams(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return page, limit
}
