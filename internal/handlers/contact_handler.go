package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/DevByAndrei/portfolio/internal/models"
	"github.com/DevByAndrei/portfolio/internal/services"
	"github.com/DevByAndrei/portfolio/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// ContactServiceInterface lets tests swap the pipeline under the handler.
type ContactServiceInterface interface {
	Submit(ctx context.Context, req *models.ContactRequest) error
}

type ContactHandler struct {
	service ContactServiceInterface
}

func NewContactHandler(service ContactServiceInterface) *ContactHandler {
	return &ContactHandler{service: service}
}

// SendEmail handles POST /api/sendEmail. Rate limiting and CORS run as
// middleware before this; preflight OPTIONS never reaches it.
func (h *ContactHandler) SendEmail(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.ContactFormSubmissions.WithLabelValues("bad_request").Inc()
		respondError(c, http.StatusBadRequest, MsgBadRequest, bindFailure(err))
		return
	}

	if err := h.service.Submit(c.Request.Context(), &req); err != nil {
		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			respondError(c, http.StatusBadRequest, vErr.Message, err)
			return
		}
		respondError(c, http.StatusInternalServerError, MsgDispatchFailed, err)
		return
	}

	c.JSON(http.StatusOK, models.ContactResponse{Success: true})
}
