package main

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"zenflow/handler"
	"zenflow/middleware"
	"zenflow/repository"
	"zenflow/usecase"
	"zenflow/utils"
)

const maxRequestBody = 1 << 20 // 1 MiB

func setupRouter(plannerStore repository.PlannerStateStore, ports usecase.PortProvider) *gin.Engine {
	router := gin.New()

	userRepo := repository.GetUserRepo(utils.MongoClient)
	sessionRepo := repository.GetSessionRepo(utils.MongoClient)
	journalRepo := repository.GetJournalRepo(utils.MongoClient)
	timerRepo := repository.GetTimerRepo(utils.MongoClient)
	puzzleRepo := repository.GetPuzzleRepo(utils.MongoClient)

	userService := usecase.NewUserService(userRepo)
	journalService := usecase.NewJournalService(journalRepo)
	timerService := usecase.NewTimerService(timerRepo)
	puzzleService := usecase.NewPuzzleService(puzzleRepo)
	plannerService := usecase.NewPlannerService(plannerStore, ports)

	stores := handler.UserDataStores{
		Users:    userRepo,
		Sessions: sessionRepo,
		Journal:  journalRepo,
		Timers:   timerRepo,
		Puzzles:  puzzleRepo,
		Planner:  plannerStore,
	}

	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestSizeLimiter(maxRequestBody))
	router.Use(middleware.SessionMiddleware(sessionRepo))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := router.Group("/api")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", func(c *gin.Context) {
				handler.RegistrationHandler(c, userService)
			})
			auth.POST("/login", func(c *gin.Context) {
				handler.LoginHandler(c, userService, sessionRepo)
			})
			auth.POST("/refresh", handler.RefreshTokenHandler)
		}
	}

	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		user := protected.Group("/user")
		{
			user.GET("/profile", func(c *gin.Context) {
				handler.GetProfileHandler(c, userService)
			})
			user.POST("/change-email", func(c *gin.Context) {
				handler.ChangeEmailHandler(c, userService)
			})
			user.POST("/change-password", func(c *gin.Context) {
				handler.ChangePasswordHandler(c, userService, sessionRepo)
			})
			user.POST("/logout", func(c *gin.Context) {
				handler.LogoutHandler(c, sessionRepo)
			})
			user.DELETE("/delete", func(c *gin.Context) {
				handler.DeleteUserHandler(c, userService, stores)
			})
		}

		twoFactor := protected.Group("/2fa")
		{
			twoFactor.POST("/generate", func(c *gin.Context) {
				handler.Generate2FASecretHandler(c, userRepo)
			})
			twoFactor.POST("/enable", func(c *gin.Context) {
				handler.Enable2FAHandler(c, userRepo)
			})
			twoFactor.POST("/verify", func(c *gin.Context) {
				handler.Verify2FAHandler(c, userRepo)
			})
			twoFactor.POST("/disable", func(c *gin.Context) {
				handler.Disable2FAHandler(c, userRepo)
			})
			twoFactor.POST("/recovery", func(c *gin.Context) {
				handler.UseRecoveryCodeHandler(c, userRepo)
			})
		}

		sessions := protected.Group("/sessions")
		{
			sessions.GET("/active", func(c *gin.Context) {
				handler.GetActiveSessionsHandler(c, sessionRepo)
			})
			sessions.DELETE("/:id", func(c *gin.Context) {
				handler.EndSessionHandler(c, sessionRepo)
			})
			sessions.POST("/logout-all", func(c *gin.Context) {
				handler.LogoutAllSessionsHandler(c, sessionRepo)
			})
		}

		journal := protected.Group("/journal")
		{
			journal.GET("", func(c *gin.Context) {
				handler.GetJournalEntriesHandler(c, journalService)
			})
			journal.POST("", func(c *gin.Context) {
				handler.CreateJournalEntryHandler(c, journalService)
			})
			journal.GET("/:id", func(c *gin.Context) {
				handler.GetJournalEntryHandler(c, journalService)
			})
			journal.PUT("/:id", func(c *gin.Context) {
				handler.UpdateJournalEntryHandler(c, journalService)
			})
			journal.DELETE("/:id", func(c *gin.Context) {
				handler.DeleteJournalEntryHandler(c, journalService)
			})
		}

		timers := protected.Group("/timers")
		{
			timers.POST("", func(c *gin.Context) {
				handler.RecordTimerSessionHandler(c, timerService)
			})
			timers.GET("/day", func(c *gin.Context) {
				handler.GetTimerDayHandler(c, timerService)
			})
		}

		puzzles := protected.Group("/puzzles")
		{
			puzzles.GET("", middleware.CacheControlMiddleware("3600"), func(c *gin.Context) {
				handler.GetPuzzleCatalogHandler(c, puzzleService)
			})
			puzzles.POST("/progress", func(c *gin.Context) {
				handler.RecordPuzzleProgressHandler(c, puzzleService)
			})
			puzzles.GET("/progress", func(c *gin.Context) {
				handler.GetPuzzleProgressHandler(c, puzzleService)
			})
		}

		plannerRoutes := protected.Group("/planner")
		{
			plannerRoutes.GET("", func(c *gin.Context) {
				handler.GetPlannerDayHandler(c, plannerService)
			})
			plannerRoutes.GET("/state", func(c *gin.Context) {
				handler.GetPlannerStateHandler(c, plannerService)
			})
			plannerRoutes.PUT("/reminders", func(c *gin.Context) {
				handler.UpdateRemindersHandler(c, plannerService)
			})
			plannerRoutes.POST("/items", func(c *gin.Context) {
				handler.AddPlannerItemHandler(c, plannerService)
			})
			plannerRoutes.DELETE("/items/:id", func(c *gin.Context) {
				handler.RemovePlannerItemHandler(c, plannerService)
			})
			plannerRoutes.POST("/entries/:id/toggle", func(c *gin.Context) {
				handler.TogglePlannerEntryHandler(c, plannerService)
			})
		}

		stats := protected.Group("/stats")
		{
			stats.GET("", func(c *gin.Context) {
				handler.GetUserStatsHandler(c, stores)
			})
			stats.GET("/system", handler.GetSystemStatsHandler)
		}
	}

	return router
}
