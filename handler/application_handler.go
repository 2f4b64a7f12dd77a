package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"go-recruit-api/common"
	"go-recruit-api/repository"
	"net/http"
	"strconv"
)

// ApplicationHandler exposes the read side of the reconciled application
// records.
type ApplicationHandler struct {
	applications repository.IApplicationRepository
}

func NewApplicationHandler(applications repository.IApplicationRepository) *ApplicationHandler {
	return &ApplicationHandler{applications: applications}
}

// GetApplication godoc
// @Summary      Read a single application
// @Description  Returns the application record, including the conversation reference once the asynchronous linking has run.
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Application ID"
// @Success      200  {object}  model.Application
// @Failure      400  {object}  common.AppError "Invalid application ID"
// @Failure      404  {object}  common.AppError "Application not found"
// @Router       /applications/{id} [get]
func (h *ApplicationHandler) GetApplication(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		return common.NewAppError(http.StatusBadRequest, "Invalid application ID", err)
	}

	app, err := h.applications.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewAppError(http.StatusNotFound, "Application not found", err)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not read application", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(app)
	return nil
}
