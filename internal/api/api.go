// Package api is the local HTTP shell over the client services.
package api

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kdudkov/eatnow/internal/app"
	"github.com/kdudkov/eatnow/pkg/log"
)

type LocalAPI struct {
	f      *fiber.App
	addr   string
	app    *app.App
	logger *slog.Logger
}

func New(a *app.App, addr string) *LocalAPI {
	api := &LocalAPI{addr: addr, app: a, logger: slog.Default().With("logger", "shell")}

	api.f = fiber.New(fiber.Config{EnablePrintRoutes: false, DisableStartupMessage: true, ErrorHandler: errorHandler})

	api.f.Use(log.NewFiberLogger(&log.LoggerConfig{
		Name:       "shell",
		DoMetrics:  true,
		SkipPaths:  []string{"/metrics"},
		UserGetter: func(_ *fiber.Ctx) string { return a.Session.ID() },
	}))

	api.f.Post("/api/login", getLoginHandler(a))
	api.f.Get("/api/status", getStatusHandler(a))
	api.f.Get("/metrics", getMetricsHandler())

	g := api.f.Group("/api", a.Guard.Middleware())

	g.Post("/logout", getLogoutHandler(a))

	g.Get("/me", getMeHandler(a))
	g.Post("/me/refresh", getRefreshHandler(a))
	g.Put("/me", getUpdateMeHandler(a))
	g.Post("/location", getLocationHandler(a))

	g.Get("/users/:id", getUserHandler(a))
	g.Get("/users/:id/avatar", getAvatarHandler(a))

	g.Get("/invitations", getInvitationsHandler(a))
	g.Post("/invitations/more", getMoreInvitationsHandler(a))
	g.Post("/invitations/:category", getSelectInvitationsHandler(a))

	g.Get("/timeslot", getTimeSlotHandler(a))
	g.Post("/timeslot", getSetTimeSlotHandler(a))

	g.Get("/messages", getMessagesHandler(a))

	return api
}

func (api *LocalAPI) Address() string {
	return api.addr
}

func (api *LocalAPI) Listen() error {
	api.logger.Info("listening " + api.addr)

	return api.f.Listen(api.addr)
}

func (api *LocalAPI) Shutdown() error {
	return api.f.Shutdown()
}

func (api *LocalAPI) App() *fiber.App {
	return api.f
}

func getMetricsHandler() fiber.Handler {
	handler := promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{})

	return adaptor.HTTPHandler(handler)
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := statusOf(err)

	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
