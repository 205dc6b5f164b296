package documents

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"docreview-backend/internal/shared/server/respond"
)

// maxUploadBody bounds the multipart body; the extra megabyte covers
// multipart framing around a file of exactly MaxFileSize.
const maxUploadBody = MaxFileSize + 1<<20

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/documents", h.upload)
	rg.GET("/documents", h.list)
	rg.GET("/documents/:id", h.get)
	rg.PATCH("/documents/:id/status", h.updateStatus)
	rg.DELETE("/documents/:id", h.remove)
	rg.GET("/documents/:id/file", h.file)
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBody)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	doc, err := h.Svc.Upload(c.Request.Context(), fileHeader.Filename, mimeType, fileHeader.Size, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "upload_failed", err.Error(), nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, toResponse(doc))
}

func (h *Handler) list(c *gin.Context) {
	docs, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list documents", nil)
		return
	}

	resp := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		resp = append(resp, toResponse(doc))
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) get(c *gin.Context) {
	id, ok := h.documentID(c)
	if !ok {
		return
	}

	doc, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch document", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(doc))
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(c *gin.Context) {
	id, ok := h.documentID(c)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if Status(strings.TrimSpace(req.Status)) != StatusCompleted {
		respond.Error(c, http.StatusBadRequest, "validation_error", "status must be COMPLETED", nil)
		return
	}

	doc, err := h.Svc.Approve(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		case errors.Is(err, ErrNotInReview):
			respond.Error(c, http.StatusConflict, "state_conflict", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update status", nil)
		}
		return
	}
	c.Set("statusTransition", string(StatusReview)+"->"+string(StatusCompleted))
	respond.JSON(c, http.StatusOK, toResponse(doc))
}

func (h *Handler) remove(c *gin.Context) {
	id, ok := h.documentID(c)
	if !ok {
		return
	}

	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete document", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) file(c *gin.Context) {
	id, ok := h.documentID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	doc, err := h.Svc.Get(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch document", nil)
		}
		return
	}
	if doc.StoredPath == "" || !h.Svc.Store.Exists(ctx, doc.StoredPath) {
		respond.Error(c, http.StatusNotFound, "not_found", "file not found", nil)
		return
	}

	size, err := h.Svc.Store.Size(ctx, doc.StoredPath)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to read file", nil)
		return
	}

	c.Header("Accept-Ranges", "bytes")

	rangeHeader := c.GetHeader("Range")
	if rangeHeader == "" {
		rc, err := h.Svc.Store.Open(ctx, doc.StoredPath)
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to read file", nil)
			return
		}
		defer rc.Close()
		c.DataFromReader(http.StatusOK, size, doc.MimeType, rc, nil)
		return
	}

	offset, length, err := parseRange(rangeHeader, size)
	if err != nil {
		if errors.Is(err, errRangeUnsatisfiable) {
			c.Header("Content-Range", fmt.Sprintf("bytes */%d", size))
			respond.Error(c, http.StatusRequestedRangeNotSatisfiable, "range_not_satisfiable", "requested range cannot be satisfied", nil)
			return
		}
		// Malformed range headers fall back to a full response.
		rc, err := h.Svc.Store.Open(ctx, doc.StoredPath)
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to read file", nil)
			return
		}
		defer rc.Close()
		c.DataFromReader(http.StatusOK, size, doc.MimeType, rc, nil)
		return
	}

	rc, err := h.Svc.Store.ReadRange(ctx, doc.StoredPath, offset, length)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to read file", nil)
		return
	}
	defer rc.Close()
	c.DataFromReader(http.StatusPartialContent, length, doc.MimeType, rc, map[string]string{
		"Content-Range": fmt.Sprintf("bytes %d-%d/%d", offset, offset+length-1, size),
	})
}

func (h *Handler) documentID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid document id", nil)
		return 0, false
	}
	c.Set("documentId", id)
	return id, true
}

var (
	errRangeMalformed     = errors.New("malformed range header")
	errRangeUnsatisfiable = errors.New("range not satisfiable")
)

// parseRange interprets a single-range bytes header against the given size,
// returning the offset and length of the requested span.
func parseRange(header string, size int64) (int64, int64, error) {
	spec, ok := strings.CutPrefix(strings.TrimSpace(header), "bytes=")
	if !ok || strings.Contains(spec, ",") {
		return 0, 0, errRangeMalformed
	}
	startRaw, endRaw, ok := strings.Cut(spec, "-")
	if !ok {
		return 0, 0, errRangeMalformed
	}
	startRaw = strings.TrimSpace(startRaw)
	endRaw = strings.TrimSpace(endRaw)

	if startRaw == "" {
		// Suffix form: last N bytes.
		suffix, err := strconv.ParseInt(endRaw, 10, 64)
		if err != nil {
			return 0, 0, errRangeMalformed
		}
		if suffix <= 0 {
			return 0, 0, errRangeUnsatisfiable
		}
		if suffix > size {
			suffix = size
		}
		return size - suffix, suffix, nil
	}

	start, err := strconv.ParseInt(startRaw, 10, 64)
	if err != nil || start < 0 {
		return 0, 0, errRangeMalformed
	}
	if start >= size {
		return 0, 0, errRangeUnsatisfiable
	}

	end := size - 1
	if endRaw != "" {
		end, err = strconv.ParseInt(endRaw, 10, 64)
		if err != nil || end < start {
			return 0, 0, errRangeMalformed
		}
		if end > size-1 {
			end = size - 1
		}
	}
	return start, end - start + 1, nil
}
