package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"

	"arithma_tech/entity"
	"arithma_tech/pkg/logger"
)

type historyRoutes struct {
	h entity.HistoryRepository
	l logger.Interface
}

func newHistoryRoutes(handler *gin.RouterGroup, h entity.HistoryRepository, l logger.Interface) {
	r := &historyRoutes{h, l}

	g := handler.Group("/history")
	{
		g.GET("", r.list)
		g.DELETE("", r.deleteByTimestamp)
		g.DELETE("/:id", r.deleteByID)
	}
}

type historyResponse struct {
	History []entity.OperationRecord `json:"history"`
}

type deleteResponse struct {
	Deleted int64 `json:"deleted"`
}

// @Summary     Show history
// @Description All logged operations, newest first
// @ID          history
// @Tags  	    history
// @Produce     json
// @Success     200 {object} historyResponse
// @Failure     500 {object} response
// @Router      /history [get]
func (r *historyRoutes) list(c *gin.Context) {
	ctx, span := otel.Tracer(traceName).Start(c.Request.Context(), "history-list")
	defer span.End()

	records, err := r.h.ListAll(ctx)
	if err != nil {
		r.l.Error(err, "http - v1 - history list")
		errorResponse(c, http.StatusInternalServerError, "could not load history")
		return
	}
	if records == nil {
		records = []entity.OperationRecord{}
	}

	c.JSON(http.StatusOK, historyResponse{records})
}

// @Summary     Delete history entries
// @Description Removes every entry logged at the given RFC3339 timestamp
// @ID          history-delete
// @Tags  	    history
// @Produce     json
// @Param       timestamp query string true "RFC3339 timestamp"
// @Success     200 {object} deleteResponse
// @Failure     400 {object} response
// @Failure     500 {object} response
// @Router      /history [delete]
func (r *historyRoutes) deleteByTimestamp(c *gin.Context) {
	ctx, span := otel.Tracer(traceName).Start(c.Request.Context(), "history-delete")
	defer span.End()

	raw := c.Query("timestamp")
	if raw == "" {
		hintedErrorResponse(c, http.StatusBadRequest, "No Selection", "Please select an entry to delete.", "")
		return
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid timestamp, expected RFC3339")
		return
	}

	n, err := r.h.DeleteByTimestamp(ctx, ts)
	if err != nil {
		r.l.Error(err, "http - v1 - history delete")
		hintedErrorResponse(c, http.StatusInternalServerError, "Delete Failed", "Could not delete the entry.", entity.DeleteFailed.String())
		return
	}

	c.JSON(http.StatusOK, deleteResponse{n})
}

// @Summary     Delete one history entry
// @ID          history-delete-id
// @Tags  	    history
// @Produce     json
// @Param       id path int true "entry id"
// @Success     200 {object} deleteResponse
// @Failure     400 {object} response
// @Failure     500 {object} response
// @Router      /history/{id} [delete]
func (r *historyRoutes) deleteByID(c *gin.Context) {
	ctx, span := otel.Tracer(traceName).Start(c.Request.Context(), "history-delete-id")
	defer span.End()

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		hintedErrorResponse(c, http.StatusBadRequest, "No Selection", "Please select an entry to delete.", "")
		return
	}

	n, err := r.h.DeleteByID(ctx, uint(id))
	if err != nil {
		r.l.Error(err, "http - v1 - history delete id")
		hintedErrorResponse(c, http.StatusInternalServerError, "Delete Failed", "Could not delete the entry.", entity.DeleteFailed.String())
		return
	}

	c.JSON(http.StatusOK, deleteResponse{n})
}
