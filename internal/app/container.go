package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nekogravitycat/lab-reservation-backend/internal/announcement"
	"github.com/nekogravitycat/lab-reservation-backend/internal/api"
	"github.com/nekogravitycat/lab-reservation-backend/internal/auth"
	"github.com/nekogravitycat/lab-reservation-backend/internal/laboratory"
	"github.com/nekogravitycat/lab-reservation-backend/internal/labphoto"
	"github.com/nekogravitycat/lab-reservation-backend/internal/pkg/storage"
	"github.com/nekogravitycat/lab-reservation-backend/internal/reservation"
	"github.com/nekogravitycat/lab-reservation-backend/internal/timeslot"
	"github.com/nekogravitycat/lab-reservation-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	StoragePath  string
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Laboratory Module
	labRepo := laboratory.NewPgxRepository(cfg.DBPool)
	labService := laboratory.NewService(labRepo)

	// TimeSlot Module
	slotRepo := timeslot.NewPgxRepository(cfg.DBPool)
	slotService := timeslot.NewService(slotRepo, labService)

	// Reservation Module
	resvRepo := reservation.NewPgxRepository(cfg.DBPool)
	resvService := reservation.NewService(resvRepo, labService, slotService)

	// Photo Module
	photoRepo := labphoto.NewPgxRepository(cfg.DBPool)
	photoService := labphoto.NewService(photoRepo, labService, store)

	// Announcement Module
	annRepo := announcement.NewPgxRepository(cfg.DBPool)
	annService := announcement.NewService(annRepo)

	// API Router Config
	routerParams := api.Config{
		IsProduction: cfg.IsProduction,
		ProdOrigins:  cfg.ProdOrigins,
		UserService:  userService,
		LabService:   labService,
		SlotService:  slotService,
		ResvService:  resvService,
		PhotoService: photoService,
		AnnService:   annService,
		JWTManager:   jwtManager,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}
