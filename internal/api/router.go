package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/innstack/hotel-ops/docs"
	"github.com/innstack/hotel-ops/internal/api/handler"
	"github.com/innstack/hotel-ops/internal/api/middleware"
	"github.com/innstack/hotel-ops/internal/core/domain"
	"github.com/innstack/hotel-ops/internal/core/gate"
	"github.com/innstack/hotel-ops/internal/core/ports"
	"github.com/innstack/hotel-ops/internal/core/session"
)

// Deps carries everything the router needs wired in.
type Deps struct {
	DB        *mongo.Database
	Redis     *redis.Client
	JWTSecret string

	State         *session.State
	AuthService   ports.AuthService
	RoomService   ports.RoomService
	TicketService ports.TicketService
	CredAdmin     ports.CredentialAdmin
	Profiles      ports.ProfileRepository
	Tokens        ports.TokenIssuer
	Mail          ports.MailEnqueuer

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("hotelops"))

	authMiddleware := middleware.Auth(d.JWTSecret)

	staffOrAdmin := []domain.Role{domain.RoleStaff, domain.RoleAdmin}

	// --- Auth routes (public) ---
	authHandler := handler.NewAuthHandler(d.AuthService, d.State)
	e.POST("/auth/login", authHandler.StaffLogin)
	e.POST("/auth/guest-login", authHandler.GuestLogin)
	e.POST("/auth/password-setup", authHandler.PasswordSetup)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/session", authHandler.Session)

	// --- Rooms ---
	roomHandler := handler.NewRoomHandler(d.RoomService)
	rooms := e.Group("/rooms", authMiddleware)
	rooms.GET("", roomHandler.List, middleware.Gate(gate.Policy{AllowedRoles: staffOrAdmin}))
	rooms.GET("/:number", roomHandler.Get, middleware.Gate(gate.Policy{}))
	rooms.POST("", roomHandler.Create, middleware.Gate(gate.Policy{
		AllowedRoles:       staffOrAdmin,
		RequiresRoomManage: true,
	}))
	rooms.PATCH("/:number/status", roomHandler.UpdateStatus, middleware.Gate(gate.Policy{
		AllowedRoles:       staffOrAdmin,
		RequiresRoomManage: true,
	}))

	// --- Tickets ---
	ticketHandler := handler.NewTicketHandler(d.TicketService)
	tickets := e.Group("/tickets", authMiddleware, middleware.Gate(gate.Policy{}))
	tickets.POST("", ticketHandler.Create)
	tickets.GET("", ticketHandler.List)
	tickets.GET("/:id", ticketHandler.Get)
	tickets.PATCH("/:id/status", ticketHandler.UpdateStatus)

	// --- Admin (staff management) ---
	adminHandler := handler.NewAdminHandler(d.CredAdmin, d.Profiles, d.Tokens, d.Mail, d.Log)
	admin := e.Group("/admin", authMiddleware, middleware.Gate(gate.Policy{
		AllowedRoles:        staffOrAdmin,
		RequiresStaffManage: true,
	}))
	admin.POST("/staff", adminHandler.CreateStaff)
	admin.GET("/staff", adminHandler.ListStaff)
	admin.DELETE("/staff/:id", adminHandler.DeleteStaff)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.DB, d.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
