package routes

import (
	"context"
	"net/http"
	"time"

	"moodbite/controllers"
	"moodbite/middlewares"
	"moodbite/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Log      *zap.Logger
	Metrics  *services.Metrics
	Gatherer prometheus.Gatherer
	DB       Pinger
	Users    middlewares.UserFinder

	JWTSecret    []byte
	TokenTTL     time.Duration
	SecureCookie bool
	ListLimit    int
	RecentLimit  int
	Location     *time.Location

	Auth      *services.AuthService
	Entries   *services.EntryService
	Insights  *services.InsightService
	Chat      *services.ChatService
	Analytics *services.AnalyticsService
	Realtime  *services.RealtimeHub
}

func SetupRouter(d Deps) (*gin.Engine, error) {
	if err := controllers.RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(middlewares.RequestID(), middlewares.Logger(d.Log), middlewares.Recovery(d.Log), middlewares.Metrics(d.Metrics))

	r.GET("/healthz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if d.DB != nil {
			if err := d.DB.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	authCtl := controllers.NewAuthController(d.Auth, int(d.TokenTTL.Seconds()), d.SecureCookie)
	accountCtl := controllers.NewAccountController(d.Auth)
	entryCtl := controllers.NewEntryController(d.Entries, d.ListLimit)
	chatCtl := controllers.NewChatController(d.Chat)
	insightCtl := controllers.NewInsightController(d.Insights)
	dashCtl := controllers.NewDashboardController(d.Auth, d.Entries, d.Insights, d.RecentLimit)
	analyticsCtl := controllers.NewAnalyticsController(d.Analytics, d.Location)
	rtCtl := controllers.NewRealtimeController(d.Realtime, d.Log)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/signup", authCtl.Signup)
		auth.POST("/login", authCtl.Login)
		auth.POST("/logout", authCtl.Logout)
	}

	requireAuth := middlewares.AuthMiddleware(d.JWTSecret, d.Users)

	api := r.Group("/api")
	api.Use(requireAuth)
	{
		api.GET("/me", accountCtl.GetProfile)
		api.DELETE("/account", accountCtl.DeleteAccount)

		api.GET("/dashboard", dashCtl.Get)

		api.POST("/food", entryCtl.LogFood)
		api.GET("/food", entryCtl.ListFood)
		api.POST("/mood", entryCtl.LogMood)
		api.GET("/mood", entryCtl.ListMood)
		api.GET("/moods", entryCtl.MoodOptions)

		api.POST("/chat", chatCtl.Send)
		api.GET("/chat/history", chatCtl.History)

		api.GET("/insights", insightCtl.List)
		api.GET("/insights/details", insightCtl.Details)

		api.GET("/analytics/summary", analyticsCtl.GetAnalyticsSummary)
		api.GET("/analytics/weekly", analyticsCtl.GetWeeklyOverview)
	}

	r.GET("/ws/insights", requireAuth, rtCtl.InsightsWS)

	return r, nil
}
