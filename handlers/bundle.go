package handlers

import (
	userRepoPkg "urbania/database/repository/user"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct for route
// registration. UserRepo is exposed separately because the auth middleware
// needs it.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository

	// Auth endpoints
	RegisterHandler gin.HandlerFunc
	LoginHandler    gin.HandlerFunc
	RefreshHandler  gin.HandlerFunc

	// Draft session endpoints
	GetSessionHandler  gin.HandlerFunc
	SaveSessionHandler gin.HandlerFunc

	// Dossier endpoints
	ListDossiersHandler  gin.HandlerFunc
	CreateDossierHandler gin.HandlerFunc
	GetDossierHandler    gin.HandlerFunc
	UploadPDFHandler     gin.HandlerFunc

	// AI endpoints
	AnalyzeProjectHandler      gin.HandlerFunc
	SuggestDocumentsHandler    gin.HandlerFunc
	ConfigureProjectHandler    gin.HandlerFunc
	GenerateDescriptionHandler gin.HandlerFunc

	// Cadastre endpoints
	CommuneParcellesHandler   gin.HandlerFunc
	CommuneBatimentsHandler   gin.HandlerFunc
	ParcelleHandler           gin.HandlerFunc
	SectionsHandler           gin.HandlerFunc
	SearchParcellesHandler    gin.HandlerFunc
	ParcelleByCoordsHandler   gin.HandlerFunc
	GeocodeHandler            gin.HandlerFunc
	ReverseGeocodeHandler     gin.HandlerFunc

	// Admin endpoints
	AdminStatsHandler             gin.HandlerFunc
	AdminSessionsHandler          gin.HandlerFunc
	AdminActivityHandler          gin.HandlerFunc
	AdminUsersHandler             gin.HandlerFunc
	AdminNotificationsHandler     gin.HandlerFunc
	AdminMarkNotificationsHandler gin.HandlerFunc
}
