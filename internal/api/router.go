package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/lab-reservation-backend/internal/announcement"
	annHttp "github.com/nekogravitycat/lab-reservation-backend/internal/announcement/http"
	"github.com/nekogravitycat/lab-reservation-backend/internal/auth"
	"github.com/nekogravitycat/lab-reservation-backend/internal/laboratory"
	labHttp "github.com/nekogravitycat/lab-reservation-backend/internal/laboratory/http"
	"github.com/nekogravitycat/lab-reservation-backend/internal/labphoto"
	photoHttp "github.com/nekogravitycat/lab-reservation-backend/internal/labphoto/http"
	"github.com/nekogravitycat/lab-reservation-backend/internal/reservation"
	resvHttp "github.com/nekogravitycat/lab-reservation-backend/internal/reservation/http"
	"github.com/nekogravitycat/lab-reservation-backend/internal/timeslot"
	slotHttp "github.com/nekogravitycat/lab-reservation-backend/internal/timeslot/http"
	"github.com/nekogravitycat/lab-reservation-backend/internal/user"
	userHttp "github.com/nekogravitycat/lab-reservation-backend/internal/user/http"
)

// Config holds the services and settings the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService  user.Service
	LabService   laboratory.Service
	SlotService  timeslot.Service
	ResvService  reservation.Service
	PhotoService labphoto.Service
	AnnService   announcement.Service

	JWTManager *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000", // Frontend dev server
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// optionalAuthMiddleware: Parses a JWT when present without rejecting
	// anonymous requests, so public endpoints can widen for staff.
	optionalAuthMiddleware := auth.OptionalAuth(cfg.JWTManager)
	// staffMiddleware: Further checks if the authenticated user has staff privileges.
	staffMiddleware := RequireStaff(cfg.UserService)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	userHandler := userHttp.NewUserHandler(cfg.UserService, cfg.JWTManager)
	labHandler := labHttp.NewHandler(cfg.LabService, cfg.UserService)
	slotHandler := slotHttp.NewHandler(cfg.SlotService)
	resvHandler := resvHttp.NewHandler(cfg.ResvService, cfg.UserService)
	photoHandler := photoHttp.NewHandler(cfg.PhotoService)
	annHandler := annHttp.NewHandler(cfg.AnnService)
	adminHandler := NewAdminHandler(cfg.ResvService, cfg.LabService, cfg.UserService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, staffMiddleware)
		labHttp.RegisterRoutes(v1, labHandler, optionalAuthMiddleware, authMiddleware, staffMiddleware)
		slotHttp.RegisterRoutes(v1, slotHandler, authMiddleware, staffMiddleware)
		resvHttp.RegisterRoutes(v1, resvHandler, authMiddleware, staffMiddleware)
		photoHttp.RegisterRoutes(v1, photoHandler, authMiddleware, staffMiddleware)
		annHttp.RegisterRoutes(v1, annHandler, authMiddleware, staffMiddleware)

		admin := v1.Group("/admin")
		admin.Use(authMiddleware, staffMiddleware)
		{
			admin.GET("/stats", adminHandler.Stats)
		}
	}

	return r
}

func splitOrigins(origins string) []string {
	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
