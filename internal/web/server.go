// Package web is the browser front end of the F1 admin dashboard: a Fiber
// app that renders the dashboard, the resource lists and the create forms
// as server-side HTML with inline SVG charts.
package web

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"f1dash/internal/api"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// DataSource is the part of the API client the web front end uses.
// *api.Client satisfies it.
type DataSource interface {
	TopDriversByWins(ctx context.Context) ([]api.DriverWinRecord, error)
	ConstructorStandings(ctx context.Context) ([]api.ConstructorStanding, error)
	GetList(ctx context.Context, resource string, params api.ListParams) (api.ListResult, error)
	Create(ctx context.Context, resource string, rec api.Record) (api.Record, error)
	Delete(ctx context.Context, resource, id string) (api.Record, error)
}

var _ DataSource = (*api.Client)(nil)

// ShutdownTimeout bounds graceful shutdown of the server.
const ShutdownTimeout = 5 * time.Second

type server struct {
	source DataSource
	logger *slog.Logger
}

// New builds the Fiber app serving the dashboard from source.
func New(source DataSource, logger *slog.Logger) *fiber.App {
	if logger == nil {
		logger = slog.Default()
	}
	s := &server{source: source, logger: logger}

	app := fiber.New(fiber.Config{
		AppName:               "f1dash",
		DisableStartupMessage: true,
		ErrorHandler:          s.errorHandler,
		Views:                 newViews(),
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(s.requestLogger)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/api/charts/:name", s.chartJSON)

	app.Get("/", s.dashboard)
	app.Get("/:resource/create", s.createForm)
	app.Post("/:resource/:id/delete", s.deleteRecord)
	app.Get("/:resource", s.list)
	app.Post("/:resource", s.create)
	return app
}

// Serve runs app on addr until ctx is cancelled, then shuts it down.
func Serve(ctx context.Context, app *fiber.App, addr string, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr)
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}

// requestLogger logs one line per request with its request id.
func (s *server) requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	status := c.Response().StatusCode()
	if err != nil {
		status = fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}
	}
	s.logger.Info("request",
		"method", c.Method(),
		"path", c.Path(),
		"status", status,
		"duration", time.Since(start),
		"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
	)
	return err
}

// errorHandler renders errors as JSON under /api and as an HTML page elsewhere.
func (s *server) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	} else {
		s.logger.Error("request failed", "path", c.Path(), "err", err)
	}
	if strings.HasPrefix(c.Path(), "/api/") {
		return c.Status(code).JSON(fiber.Map{"error": err.Error()})
	}
	return render(c, code, "error", errorPage{Status: code, Message: err.Error()})
}
