package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"arithma_tech/entity"
	"arithma_tech/internal/compression"
	"arithma_tech/pkg/logger"
)

type operationRoutes struct {
	c      OperationController
	runner *compression.Runner
	l      logger.Interface
}

func newOperationRoutes(handler *gin.RouterGroup, c OperationController, l logger.Interface) {
	r := &operationRoutes{c, compression.NewRunner(c, l), l}

	g := handler.Group("/operation")
	{
		g.GET("", r.state)
		g.PUT("/mode", r.switchMode)
		g.PUT("/text", r.setText)
		g.PUT("/file", r.selectFile)
		g.DELETE("/file", r.clearSelection)
		g.POST("/compress", r.request(entity.Compress))
		g.POST("/decompress", r.request(entity.Decompress))
	}
}

type operationResponse struct {
	Mode         string `json:"mode"`
	FilePath     string `json:"file_path,omitempty"`
	Text         string `json:"text,omitempty"`
	FileLabel    string `json:"file_label"`
	Busy         bool   `json:"busy"`
	Operation    string `json:"operation,omitempty"`
	Percent      int    `json:"percent"`
	Status       string `json:"status"`
	StatusCode   string `json:"status_code"`
	Confirmation string `json:"confirmation,omitempty"`
}

type requestResponse struct {
	Accepted bool              `json:"accepted"`
	Warning  string            `json:"warning,omitempty"`
	State    operationResponse `json:"state"`
}

type modeRequest struct {
	Mode string `json:"mode" binding:"required" example:"text"`
}

type textRequest struct {
	Text string `json:"text" example:"hello"`
}

type fileRequest struct {
	Path string `json:"path" binding:"required" example:"/images/cat.png"`
}

func toOperationResponse(s compression.Snapshot) operationResponse {
	resp := operationResponse{
		Mode:         s.Mode.String(),
		FilePath:     s.FilePath,
		Text:         s.Text,
		FileLabel:    s.FileLabel,
		Busy:         s.Busy,
		Percent:      s.Percent,
		Status:       s.Status.String(),
		StatusCode:   s.Status.Code.Name(),
		Confirmation: s.Status.Confirmation(),
	}
	if s.Busy {
		resp.Operation = string(s.Kind)
	}
	return resp
}

// @Summary     Controller state
// @ID          operation
// @Tags  	    operation
// @Produce     json
// @Success     200 {object} operationResponse
// @Router      /operation [get]
func (r *operationRoutes) state(c *gin.Context) {
	c.JSON(http.StatusOK, toOperationResponse(r.c.Snapshot()))
}

// @Summary     Switch input mode
// @ID          operation-mode
// @Tags  	    operation
// @Accept      json
// @Produce     json
// @Param       request body modeRequest true "text or file"
// @Success     200 {object} operationResponse
// @Failure     400 {object} response
// @Failure     409 {object} response
// @Router      /operation/mode [put]
func (r *operationRoutes) switchMode(c *gin.Context) {
	var req modeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	mode, err := entity.ParseInputMode(req.Mode)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	r.respond(c, r.c.SwitchMode(mode))
}

// @Summary     Replace the text buffer
// @ID          operation-text
// @Tags  	    operation
// @Accept      json
// @Produce     json
// @Param       request body textRequest true "text to stage"
// @Success     200 {object} operationResponse
// @Failure     409 {object} response
// @Router      /operation/text [put]
func (r *operationRoutes) setText(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	r.respond(c, r.c.SetText(req.Text))
}

// @Summary     Select a file
// @ID          operation-file
// @Tags  	    operation
// @Accept      json
// @Produce     json
// @Param       request body fileRequest true "path of the image"
// @Success     200 {object} operationResponse
// @Failure     409 {object} response
// @Failure     422 {object} response
// @Router      /operation/file [put]
func (r *operationRoutes) selectFile(c *gin.Context) {
	var req fileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	r.respond(c, r.c.SelectFile(req.Path))
}

// @Summary     Clear the selected file
// @ID          operation-file-clear
// @Tags  	    operation
// @Produce     json
// @Success     200 {object} operationResponse
// @Failure     409 {object} response
// @Router      /operation/file [delete]
func (r *operationRoutes) clearSelection(c *gin.Context) {
	r.respond(c, r.c.ClearSelection())
}

func (r *operationRoutes) respond(c *gin.Context, err error) {
	if err != nil {
		r.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toOperationResponse(r.c.Snapshot()))
}

func (r *operationRoutes) fail(c *gin.Context, err error) {
	if ve := entity.AsValidationError(err); ve != nil {
		hintedErrorResponse(c, http.StatusUnprocessableEntity, ve.Title(), ve.Hint(), ve.Kind.String())
		return
	}
	if errors.Is(err, entity.ErrOperationInProgress) {
		errorResponse(c, http.StatusConflict, err.Error())
		return
	}
	r.l.Error(err, "http - v1 - operation")
	errorResponse(c, http.StatusInternalServerError, "operation failed")
}

// @Summary     Start compress or decompress
// @Description Accepted requests return 202 and complete in the background. A request made while
// @Description another operation runs returns 200 with accepted=false.
// @ID          operation-request
// @Tags  	    operation
// @Produce     json
// @Success     200 {object} requestResponse
// @Success     202 {object} requestResponse
// @Failure     422 {object} response
// @Router      /operation/compress [post]
// @Router      /operation/decompress [post]
func (r *operationRoutes) request(kind entity.OperationKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := otel.Tracer(traceName).Start(c.Request.Context(), "operation-request")
		defer span.End()

		span.SetAttributes(attribute.String("operation", string(kind)))

		accepted, err := r.c.Request(ctx, kind)
		if err != nil && !accepted {
			r.fail(c, err)
			return
		}

		resp := requestResponse{Accepted: accepted}
		if err != nil {
			resp.Warning = err.Error()
		}

		if !accepted {
			resp.State = toOperationResponse(r.c.Snapshot())
			c.JSON(http.StatusOK, resp)
			return
		}

		go func() {
			if err := r.runner.Run(context.WithoutCancel(ctx)); err != nil {
				r.l.Error(err, "http - v1 - operation runner")
			}
		}()

		resp.State = toOperationResponse(r.c.Snapshot())
		c.JSON(http.StatusAccepted, resp)
	}
}
