package documents

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"paggo-backend/internal/shared/server/middleware"
	"paggo-backend/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the documents service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches document routes to an authenticated router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/upload", h.upload)
	rg.GET("", h.list)
	rg.POST("/:id/ask", h.ask)
	rg.DELETE("/:id", h.remove)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	doc, err := h.Svc.Process(c.Request.Context(), userID, fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			// Extraction, enrichment and persistence failures all surface as
			// one internal error carrying the cause message.
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process document: "+err.Error(), nil)
		}
		return
	}

	c.Set("documentId", doc.ID)
	respond.JSON(c, http.StatusCreated, gin.H{
		"success":  true,
		"document": doc,
	})
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	docs, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list documents", nil)
		return
	}
	if docs == nil {
		docs = []Document{}
	}

	respond.OK(c, docs)
}

type askRequest struct {
	Question string `json:"question"`
}

func (h *Handler) ask(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	documentID := c.Param("id")

	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	answer, err := h.Svc.Ask(c.Request.Context(), userID, documentID, req.Question)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "question is required", nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to answer question: "+err.Error(), nil)
		}
		return
	}

	respond.OK(c, gin.H{"answer": answer})
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	documentID := c.Param("id")

	deleted, err := h.Svc.Delete(c.Request.Context(), userID, documentID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete document", nil)
		return
	}

	respond.OK(c, gin.H{"deleted": deleted})
}
