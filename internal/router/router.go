package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"freefood/internal/auth"
	"freefood/internal/config"
	"freefood/internal/handler"
)

// Register wires routes and middleware. All API routes live under /api;
// the secured group verifies the bearer token and attaches typed claims.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	eventHandler *handler.EventHandler,
	tagHandler *handler.TagHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	api := e.Group("/api")

	// Public routes
	api.POST("/signup", authHandler.Signup)
	api.POST("/login", authHandler.Login)
	api.GET("/tags", tagHandler.ListTags)
	api.GET("/events/active", eventHandler.GetActiveEvents)
	api.GET("/events/:event_id", eventHandler.GetEvent)

	// Secured routes (require a valid session token)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	secured.GET("/events", eventHandler.GetEvents)
	secured.POST("/events/create", eventHandler.CreateEvent, auth.RequireEventPoster)
	secured.PUT("/events/:event_id", eventHandler.EditEvent)
	secured.PATCH("/events/:event_id", eventHandler.EditEvent)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
