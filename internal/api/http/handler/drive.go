package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/driveassist/auth-server/internal/drive"
	"github.com/driveassist/auth-server/internal/logger"
	"github.com/driveassist/auth-server/internal/model"
)

// DriveService lists a user's Drive files.
type DriveService interface {
	ListFiles(ctx context.Context, userID uuid.UUID) ([]drive.File, error)
}

// Drive handles the Drive listing endpoint.
type Drive struct {
	driveService   DriveService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewDrive creates a new Drive handler.
func NewDrive(driveService DriveService, contextManager model.ContextManager, logger *logger.Logger) *Drive {
	return &Drive{
		driveService:   driveService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Files lists the authenticated user's Drive files.
// GET /drive/files
func (h *Drive) Files(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	files, err := h.driveService.ListFiles(r.Context(), userID)
	if err != nil {
		h.logger.Error("Drive handler: listing failed",
			"user_id", userID,
			"error", err.Error())
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]drive.File{"files": files})
}
