package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/turnolibre/internal/httperr"
	"github.com/BruksfildServices01/turnolibre/internal/middleware"
)

// actorOf is the id recorded as actor on audit events: the staff or admin
// user id of the session, or "anonymous" on public routes.
func actorOf(c *gin.Context) string {
	if s := middleware.SessionFrom(c); s != nil {
		return s.UserID
	}
	return "anonymous"
}

// bind decodes the JSON body into req, answering 400 on failure.
func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return false
	}
	return true
}
