package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"urbania/config"
	"urbania/cron"
	"urbania/database"
	activityRepoPkg "urbania/database/repository/activity"
	dossierRepoPkg "urbania/database/repository/dossier"
	notificationRepoPkg "urbania/database/repository/notification"
	sessionRepoPkg "urbania/database/repository/session"
	userRepoPkg "urbania/database/repository/user"
	"urbania/handlers"
	"urbania/middleware"
	"urbania/routes"
	"urbania/services/assist"
	"urbania/services/cadastre"
	"urbania/services/dossier"
	"urbania/services/session"
	"urbania/services/stats"
	"urbania/services/user"
	"urbania/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	storageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage: %v", err)
	}
	if storageService == nil {
		logger.Warn("Cloudinary credentials not set, dossier PDF uploads disabled")
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	sessionRepo := sessionRepoPkg.NewMongoSessionRepo()
	dossierRepo := dossierRepoPkg.NewMongoDossierRepo()
	activityRepo := activityRepoPkg.NewMongoActivityRepo()
	notificationRepo := notificationRepoPkg.NewMongoNotificationRepo()

	// services.
	userService := &user.DefaultUserService{
		Repo:          userRepo,
		Activity:      activityRepo,
		Notifications: notificationRepo,
		AuthCache:     utils.GetAuthCacheClient(),
	}
	sessionService := &session.DefaultSessionService{
		Sessions:      sessionRepo,
		Users:         userRepo,
		Activity:      activityRepo,
		Notifications: notificationRepo,
	}
	dossierService := &dossier.DefaultDossierService{
		Dossiers:      dossierRepo,
		Users:         userRepo,
		Activity:      activityRepo,
		Notifications: notificationRepo,
		Storage:       storageService,
	}
	statsService := &stats.DefaultStatsService{
		Dossiers: dossierRepo,
		Sessions: sessionRepo,
	}
	cadastreClient := cadastre.NewClient()

	var generator assist.TextGenerator
	if key := config.AppConfig.GeminiAPIKey; key != "" {
		gemini, err := assist.NewGeminiClient(key)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize Gemini client: %v", err)
		}
		generator = gemini
	} else {
		logger.Warn("GEMINI_API_KEY not set, AI assistance serves fallback values")
	}
	assistService := &assist.DefaultAssistService{Gen: generator}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo: userRepo,

		// Auth endpoints.
		RegisterHandler: handlers.NewRegisterHandler(userService),
		LoginHandler:    handlers.NewLoginHandler(userService),
		RefreshHandler:  handlers.NewRefreshHandler(userService),

		// Draft session endpoints.
		GetSessionHandler:  handlers.NewGetSessionHandler(sessionService),
		SaveSessionHandler: handlers.NewSaveSessionHandler(sessionService),

		// Dossier endpoints.
		ListDossiersHandler:  handlers.NewListDossiersHandler(dossierService),
		CreateDossierHandler: handlers.NewCreateDossierHandler(dossierService),
		GetDossierHandler:    handlers.NewGetDossierHandler(dossierService),
		UploadPDFHandler:     handlers.NewUploadPDFHandler(dossierService),

		// AI endpoints.
		AnalyzeProjectHandler:      handlers.NewAnalyzeProjectHandler(assistService),
		SuggestDocumentsHandler:    handlers.NewSuggestDocumentsHandler(assistService),
		ConfigureProjectHandler:    handlers.NewConfigureProjectHandler(assistService),
		GenerateDescriptionHandler: handlers.NewGenerateDescriptionHandler(assistService),

		// Cadastre endpoints.
		CommuneParcellesHandler: handlers.NewCommuneParcellesHandler(cadastreClient),
		CommuneBatimentsHandler: handlers.NewCommuneBatimentsHandler(cadastreClient),
		ParcelleHandler:         handlers.NewParcelleHandler(cadastreClient),
		SectionsHandler:         handlers.NewSectionsHandler(cadastreClient),
		SearchParcellesHandler:  handlers.NewSearchParcellesHandler(cadastreClient),
		ParcelleByCoordsHandler: handlers.NewParcelleByCoordsHandler(cadastreClient),
		GeocodeHandler:          handlers.NewGeocodeHandler(cadastreClient),
		ReverseGeocodeHandler:   handlers.NewReverseGeocodeHandler(cadastreClient),

		// Admin endpoints.
		AdminStatsHandler:             handlers.NewAdminStatsHandler(statsService),
		AdminSessionsHandler:          handlers.NewAdminSessionsHandler(sessionService),
		AdminActivityHandler:          handlers.NewAdminActivityHandler(activityRepo),
		AdminUsersHandler:             handlers.NewAdminUsersHandler(userService),
		AdminNotificationsHandler:     handlers.NewAdminNotificationsHandler(notificationRepo),
		AdminMarkNotificationsHandler: handlers.NewAdminMarkNotificationsHandler(notificationRepo),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	cron.StartKeepAlive()

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
