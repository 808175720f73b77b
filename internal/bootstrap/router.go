package bootstrap

import (
	"time"

	httpapi "github.com/GoSim-25-26J-441/indoor-nav-backend/internal/api/http"
	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/api/http/middleware"
	navhttp "github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/http"
	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	DB          *pgxpool.Pool
	Redis       *redis.Client

	Navigation *service.NavigationService
	Closures   *service.ClosureService

	RouteRateLimit float64
	RouteRateBurst int
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID, "X-User-Id"},
		ExposeHeaders:   []string{middleware.HeaderRequestID},
		MaxAge:          12 * time.Hour,
	}))
	r.Use(middleware.RequestID())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")

	limiter := navhttp.NewLimiter(dep.RouteRateLimit, dep.RouteRateBurst)
	navHandler := navhttp.New(dep.Navigation, dep.Closures, limiter)
	navHandler.Register(api)

	return r
}
