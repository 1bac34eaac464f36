package routes

import (
	"net/http"
	"time"

	"urbania/handlers"
	"urbania/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers authentication endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.RegisterHandler)
		api.POST("/login", hb.LoginHandler)
		api.POST("/refresh", hb.RefreshHandler)
	}
}

// RegisterSessionRoutes registers the draft session endpoints.
func RegisterSessionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/sessions")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.GET("/", hb.GetSessionHandler)
		api.POST("/", hb.SaveSessionHandler)
	}
}

// RegisterDossierRoutes registers the dossier endpoints.
func RegisterDossierRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/dossiers")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.GET("/", hb.ListDossiersHandler)
		api.POST("/", hb.CreateDossierHandler)
		api.GET("/:id", hb.GetDossierHandler)
		api.POST("/:id/pdf", hb.UploadPDFHandler)
	}
}

// RegisterAIRoutes registers the form assistance endpoints.
func RegisterAIRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/ai")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.POST("/analyze-project/", hb.AnalyzeProjectHandler)
		api.POST("/suggest-documents/", hb.SuggestDocumentsHandler)
		api.POST("/configure-project/", hb.ConfigureProjectHandler)
		api.POST("/generate-description/", hb.GenerateDescriptionHandler)
	}
}

// RegisterCadastreRoutes registers the public cadastral and geocoding
// endpoints.
func RegisterCadastreRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/cadastre")
	{
		api.GET("/parcelles/:inseeCode/", hb.CommuneParcellesHandler)
		api.GET("/batiments/:inseeCode/", hb.CommuneBatimentsHandler)
		api.GET("/parcelle/coords/", hb.ParcelleByCoordsHandler)
		api.GET("/parcelle/:inseeCode/:section/:numero/", hb.ParcelleHandler)
		api.GET("/sections/:inseeCode/", hb.SectionsHandler)
		api.GET("/search/", hb.SearchParcellesHandler)
		api.GET("/geocode/", hb.GeocodeHandler)
		api.GET("/reverse/", hb.ReverseGeocodeHandler)
	}
}

// RegisterAdminRoutes registers the admin dashboard endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.Use(middleware.RequireAdminMiddleware(hb.UserRepo))
		api.GET("/stats/", hb.AdminStatsHandler)
		api.GET("/sessions/", hb.AdminSessionsHandler)
		api.GET("/activity/", hb.AdminActivityHandler)
		api.GET("/users/", hb.AdminUsersHandler)
		api.GET("/notifications/", hb.AdminNotificationsHandler)
		api.POST("/notifications/mark-read/", hb.AdminMarkNotificationsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterSessionRoutes(r, hb)
	RegisterDossierRoutes(r, hb)
	RegisterAIRoutes(r, hb)
	RegisterCadastreRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
