package handlers

import (
	"net/http"

	activityRepo "urbania/database/repository/activity"
	notificationRepo "urbania/database/repository/notification"
	"urbania/models"
	"urbania/services/stats"
	"urbania/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// recentFeedLimit caps the admin activity and notification feeds.
const recentFeedLimit = 50

// NewAdminStatsHandler serves the dashboard aggregation.
func NewAdminStatsHandler(svc stats.StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		s, err := svc.GetStats()
		if err != nil {
			logger.Error("Failed to compute admin stats", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de calculer les statistiques."})
			return
		}
		c.JSON(http.StatusOK, s)
	}
}

// NewAdminActivityHandler serves the recent activity feed.
func NewAdminActivityHandler(repo activityRepo.ActivityRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		entries, err := repo.ListRecent(recentFeedLimit)
		if err != nil {
			logger.Error("Failed to list activity", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de lister l'activité."})
			return
		}
		if entries == nil {
			entries = []models.ActivityLog{}
		}
		c.JSON(http.StatusOK, entries)
	}
}

// NewAdminUsersHandler lists accounts, optionally filtered by role. Password
// and token hashes never leave the repository.
func NewAdminUsersHandler(svc user.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		users, err := svc.ListUsers(c.Query("role"))
		if err != nil {
			logger.Error("Failed to list users", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de lister les utilisateurs."})
			return
		}
		if users == nil {
			users = []models.User{}
		}
		c.JSON(http.StatusOK, users)
	}
}

// NewAdminNotificationsHandler serves the recent notification feed.
func NewAdminNotificationsHandler(repo notificationRepo.NotificationRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		items, err := repo.ListRecent(recentFeedLimit)
		if err != nil {
			logger.Error("Failed to list notifications", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de lister les notifications."})
			return
		}
		if items == nil {
			items = []models.AdminNotification{}
		}
		c.JSON(http.StatusOK, items)
	}
}

// NewAdminMarkNotificationsHandler flags every unread notification as read.
func NewAdminMarkNotificationsHandler(repo notificationRepo.NotificationRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		updated, err := repo.MarkAllRead()
		if err != nil {
			logger.Error("Failed to mark notifications as read", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de mettre à jour les notifications."})
			return
		}
		c.JSON(http.StatusOK, gin.H{"updated": updated})
	}
}
