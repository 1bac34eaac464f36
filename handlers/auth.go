package handlers

import (
	"errors"
	"net/http"

	"urbania/models"
	"urbania/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRegisterHandler handles user registration with profile fields.
func NewRegisterHandler(svc user.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		var req models.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Error("Invalid registration request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		resp, err := svc.Register(req, c.ClientIP())
		if err != nil {
			var verr *user.ValidationError
			if errors.As(err, &verr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field})
				return
			}
			logger.Error("User registration failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"user":    resp.User,
			"access":  resp.Access,
			"refresh": resp.Refresh,
		})
	}
}

// NewLoginHandler authenticates by username or email and returns a token pair.
func NewLoginHandler(svc user.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Error("Invalid login request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		resp, err := svc.Login(req.Username, req.Password, c.ClientIP())
		if err != nil {
			if errors.Is(err, user.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Identifiants invalides."})
				return
			}
			var verr *user.ValidationError
			if errors.As(err, &verr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field})
				return
			}
			logger.Error("Login failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"user":    resp.User,
			"access":  resp.Access,
			"refresh": resp.Refresh,
		})
	}
}

// NewRefreshHandler rotates a token pair from a valid refresh token.
func NewRefreshHandler(svc user.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		var req struct {
			Refresh string `json:"refresh"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Refresh == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Le jeton de rafraîchissement est requis."})
			return
		}

		resp, err := svc.Refresh(req.Refresh)
		if err != nil {
			logger.Warn("Token refresh rejected", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Jeton de rafraîchissement invalide."})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"user":    resp.User,
			"access":  resp.Access,
			"refresh": resp.Refresh,
		})
	}
}
