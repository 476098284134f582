package importer

import (
	"context"
	"io"
	"strings"

	"github.com/aiinasia/core/internal/pkg/pagination"
	"github.com/aiinasia/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

// maxErrorsShown caps the per-batch error list returned to the operator; the
// remainder is summarized by count.
const maxErrorsShown = 50

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	mig := rg.Group("/migration", authMW)
	mig.GET("/template", h.template)
	mig.POST("/import", h.startImport)
	mig.GET("/batches", h.listBatches)
	mig.GET("/batches/:batchId", h.getBatch)
	mig.POST("/batches/:batchId/cancel", h.cancel)
	mig.POST("/batches/:batchId/rollback", h.rollback)
	mig.DELETE("/batches/:batchId", h.deleteLog)
}

func (h *Handler) template(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="import-template.csv"`)
	c.Data(200, "text/csv; charset=utf-8", []byte(CSVTemplate()))
}

func (h *Handler) startImport(c *gin.Context) {
	filename, csvText, err := readUpload(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if strings.TrimSpace(csvText) == "" {
		response.BadRequest(c, "empty CSV upload")
		return
	}

	run, err := h.svc.Prepare(filename, csvText)
	if err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	// The run outlives the request; cancellation happens through the cancel
	// endpoint, not the request context.
	go h.svc.Execute(context.Background(), run, nil)

	response.Created(c, gin.H{
		"batch_id":     run.BatchID,
		"total_rows":   run.Total,
		"dropped_rows": run.DroppedRows,
	})
}

func readUpload(c *gin.Context) (string, string, error) {
	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			return "", "", err
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return "", "", err
		}
		return file.Filename, string(data), nil
	}

	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return "", "", err
	}
	return "upload.csv", string(data), nil
}

func (h *Handler) listBatches(c *gin.Context) {
	q := pagination.FromContext(c)
	items, pag, err := h.svc.ListBatches(q)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, items, pag)
}

func (h *Handler) getBatch(c *gin.Context) {
	entry, err := h.svc.GetBatch(c.Param("batchId"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if entry == nil {
		response.NotFound(c)
		return
	}

	total := len(entry.Errors)
	shown := entry.Errors
	if total > maxErrorsShown {
		shown = entry.Errors[:maxErrorsShown]
	}
	response.OK(c, gin.H{
		"batch":        entry,
		"errors":       shown,
		"error_count":  total,
		"error_capped": total > maxErrorsShown,
	})
}

func (h *Handler) cancel(c *gin.Context) {
	if err := h.svc.Cancel(c.Param("batchId")); err != nil {
		response.NotFoundMsg(c, err.Error())
		return
	}
	response.OK(c, gin.H{"cancelling": true})
}

func (h *Handler) rollback(c *gin.Context) {
	if err := h.svc.Rollback(c.Request.Context(), c.Param("batchId")); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}
	response.OK(c, gin.H{"rolled_back": true})
}

func (h *Handler) deleteLog(c *gin.Context) {
	if err := h.svc.DeleteLog(c.Param("batchId")); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}
	response.NoContent(c)
}
