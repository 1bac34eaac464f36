package handlers

import (
	"errors"
	"net/http"

	"urbania/models"
	"urbania/services/dossier"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewListDossiersHandler returns the caller's dossiers, newest first.
func NewListDossiersHandler(svc dossier.DossierService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		dossiers, err := svc.ListByUser(currentUserID(c))
		if err != nil {
			logger.Error("Failed to list dossiers", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de lister les dossiers."})
			return
		}
		if dossiers == nil {
			dossiers = []models.Dossier{}
		}
		c.JSON(http.StatusOK, dossiers)
	}
}

// NewCreateDossierHandler finalizes the form data into a dossier. The
// caller's draft session is reset in the same transaction.
func NewCreateDossierHandler(svc dossier.DossierService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		var req struct {
			Data   models.FormData `json:"data"`
			Status string          `json:"status"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		if len(req.Data) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Les données du dossier sont requises."})
			return
		}

		d, err := svc.Create(currentUserID(c), req.Data, req.Status)
		if err != nil {
			logger.Error("Failed to create dossier", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de créer le dossier."})
			return
		}
		c.JSON(http.StatusCreated, d)
	}
}

// NewGetDossierHandler returns one of the caller's dossiers, 404 when the
// dossier does not exist or belongs to someone else.
func NewGetDossierHandler(svc dossier.DossierService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		d, err := svc.Get(currentUserID(c), c.Param("id"))
		if err != nil {
			logger.Error("Failed to fetch dossier", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de charger le dossier."})
			return
		}
		if d == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Dossier introuvable."})
			return
		}
		c.JSON(http.StatusOK, d)
	}
}

// NewUploadPDFHandler stores a generated CERFA document for a dossier and
// records its URL.
func NewUploadPDFHandler(svc dossier.DossierService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Le fichier PDF est requis."})
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			logger.Error("Failed to open uploaded file", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Fichier illisible."})
			return
		}
		defer file.Close()

		url, err := svc.AttachPDF(c.Request.Context(), currentUserID(c), c.Param("id"), file)
		if err != nil {
			if errors.Is(err, dossier.ErrUploadsDisabled) {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Le stockage de documents n'est pas configuré."})
				return
			}
			logger.Error("Failed to upload dossier PDF", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible d'enregistrer le document."})
			return
		}
		if url == "" {
			c.JSON(http.StatusNotFound, gin.H{"error": "Dossier introuvable."})
			return
		}
		c.JSON(http.StatusOK, gin.H{"pdfUrl": url})
	}
}
