package handlers

import (
	"net/http"

	"urbania/models"
	"urbania/services/assist"

	"github.com/gin-gonic/gin"
)

// bindDescription reads the {description} body shared by most AI endpoints,
// answering 400 itself when it is missing.
func bindDescription(c *gin.Context) (string, bool) {
	var req struct {
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "La description du projet est requise."})
		return "", false
	}
	return req.Description, true
}

// NewAnalyzeProjectHandler extracts structured attributes from a free-text
// project description.
func NewAnalyzeProjectHandler(svc assist.AssistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		description, ok := bindDescription(c)
		if !ok {
			return
		}

		analysis := svc.AnalyzeProject(c.Request.Context(), description)
		if analysis == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "L'analyse du projet a échoué."})
			return
		}
		c.JSON(http.StatusOK, analysis)
	}
}

// NewSuggestDocumentsHandler suggests which DP pieces the project requires.
func NewSuggestDocumentsHandler(svc assist.AssistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		description, ok := bindDescription(c)
		if !ok {
			return
		}

		suggestions := svc.SuggestDocuments(c.Request.Context(), description)
		if suggestions == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "La suggestion de documents a échoué."})
			return
		}
		c.JSON(http.StatusOK, suggestions)
	}
}

// NewConfigureProjectHandler builds a form configuration for a custom
// project type. Always answers 200; the service has a fixed fallback.
func NewConfigureProjectHandler(svc assist.AssistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		description, ok := bindDescription(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, svc.ConfigureProject(c.Request.Context(), description))
	}
}

// NewGenerateDescriptionHandler produces a short project description from
// the selected project type and works.
func NewGenerateDescriptionHandler(svc assist.AssistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.DescriptionRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.ProjectType == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Le type de projet est requis."})
			return
		}
		c.JSON(http.StatusOK, gin.H{"description": svc.GenerateDescription(c.Request.Context(), req)})
	}
}
