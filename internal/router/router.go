package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/auroraminds/backend/api/handler"
)

type Handlers struct {
	Auth        *apiHandler.AuthHandler
	Profile     *apiHandler.ProfileHandler
	Task        *apiHandler.TaskHandler
	Focus       *apiHandler.FocusHandler
	Rewards     *apiHandler.RewardsHandler
	Analytics   *apiHandler.AnalyticsHandler
	Leaderboard *apiHandler.LeaderboardHandler
	Health      *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/register", handlers.Auth.Register)
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/refresh", handlers.Auth.Refresh)
	r.POST("/api/v1/auth/logout", handlers.Auth.Logout)

	// Protected routes
	r.GET("/api/v1/profile", authMiddleware(handlers.Profile.GetProfile))
	r.PUT("/api/v1/profile", authMiddleware(handlers.Profile.UpdateProfile))
	r.GET("/api/v1/profile/subjects", authMiddleware(handlers.Profile.GetSubjects))
	r.POST("/api/v1/profile/subjects", authMiddleware(handlers.Profile.AddSubject))
	r.DELETE("/api/v1/profile/subjects/{subject}", authMiddleware(handlers.Profile.RemoveSubject))

	r.GET("/api/v1/tasks", authMiddleware(handlers.Task.GetTasks))
	r.POST("/api/v1/tasks", authMiddleware(handlers.Task.CreateTask))
	r.PUT("/api/v1/tasks/{id}", authMiddleware(handlers.Task.UpdateTask))
	r.DELETE("/api/v1/tasks/{id}", authMiddleware(handlers.Task.DeleteTask))

	r.GET("/api/v1/focus-sessions", authMiddleware(handlers.Focus.GetSessions))
	r.POST("/api/v1/focus-sessions", authMiddleware(handlers.Focus.CreateSession))
	r.GET("/api/v1/focus-sessions/stats", authMiddleware(handlers.Focus.GetStats))
	r.GET("/api/v1/focus-sessions/task/{taskId}", authMiddleware(handlers.Focus.GetSessionsByTask))

	r.GET("/api/v1/rewards", authMiddleware(handlers.Rewards.GetRewards))
	r.POST("/api/v1/rewards/claim/{rewardId}", authMiddleware(handlers.Rewards.ClaimReward))

	r.GET("/api/v1/analytics/focus-summary", authMiddleware(handlers.Analytics.GetFocusSummary))
	r.GET("/api/v1/analytics/streak", authMiddleware(handlers.Analytics.GetStreak))
	r.GET("/api/v1/analytics/insights", authMiddleware(handlers.Analytics.GetInsights))

	r.GET("/api/v1/leaderboard", authMiddleware(handlers.Leaderboard.GetLeaderboard))

	return r
}
