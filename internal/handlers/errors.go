package handlers

import (
	"github.com/DevByAndrei/portfolio/internal/models"
	"github.com/gin-gonic/gin"
)

// Spanish user-facing messages owned by the HTTP layer.
const (
	MsgBadRequest       = "Solicitud inválida."
	MsgDispatchFailed   = "Error al enviar el correo."
	MsgMethodNotAllowed = "Método no permitido"
)

// attachError attaches err to the gin context so the observability
// middleware can include the reason in the request log. c.Error() returns
// *gin.Error (not the error interface), so errcheck is suppressed on
// purpose.
func attachError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err) //nolint:errcheck
	}
}

// respondError sends an error JSON response and attaches the error to the
// gin context for the request log.
func respondError(c *gin.Context, status int, message string, err error) {
	attachError(c, err)
	c.JSON(status, models.ContactResponse{Success: false, Error: message})
}
