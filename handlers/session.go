package handlers

import (
	"net/http"

	"urbania/models"
	"urbania/services/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewGetSessionHandler returns the caller's draft session, creating an empty
// one on first access.
func NewGetSessionHandler(svc session.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		sess, err := svc.Get(currentUserID(c))
		if err != nil {
			logger.Error("Failed to load draft session", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de charger la session."})
			return
		}
		c.JSON(http.StatusOK, sess)
	}
}

// NewSaveSessionHandler applies an autosave update to the caller's draft.
func NewSaveSessionHandler(svc session.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		var update models.SessionUpdate
		if err := c.ShouldBindJSON(&update); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		sess, err := svc.Save(currentUserID(c), update)
		if err != nil {
			logger.Error("Failed to save draft session", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible d'enregistrer la session."})
			return
		}
		c.JSON(http.StatusOK, sess)
	}
}

// NewAdminSessionsHandler lists every draft session for the admin dashboard.
func NewAdminSessionsHandler(svc session.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		sessions, err := svc.ListAll()
		if err != nil {
			logger.Error("Failed to list sessions", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de lister les sessions."})
			return
		}
		if sessions == nil {
			sessions = []models.DraftSession{}
		}
		c.JSON(http.StatusOK, sessions)
	}
}
