package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/solar-dashboard/internal/catalog"
	"github.com/i474232898/solar-dashboard/internal/dashboard"
	"github.com/i474232898/solar-dashboard/internal/solar"
	"github.com/i474232898/solar-dashboard/internal/weather"
)

// Dependencies are the components served by the /api/v1 routes.
type Dependencies struct {
	Weather *weather.State
	Solar   *solar.State
	Catalog *catalog.Catalog
	Board   *dashboard.Board
}

// RegisterRoutes wires the state, site and dashboard handlers into the Fiber
// app. Actions always answer 200 with the state after the action; a failed
// fetch shows up in the snapshot's error field.
func RegisterRoutes(app fiber.Router, deps Dependencies) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/state", func(c *fiber.Ctx) error {
		return c.JSON(deps.Weather.Snapshot())
	})

	v1.Get("/weather/summary", func(c *fiber.Ctx) error {
		return c.JSON(weather.Summarize(deps.Weather.Snapshot().WeatherData))
	})

	v1.Post("/weather/fetch", func(c *fiber.Ctx) error {
		q, err := parseCoordQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		deps.Weather.FetchWeatherData(c.UserContext(), q.Lat, q.Lon)
		return c.JSON(deps.Weather.Snapshot())
	})

	v1.Post("/weather/location", func(c *fiber.Ctx) error {
		var body locationBody
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		deps.Weather.UpdateLocation(c.UserContext(), body.Location)
		return c.JSON(deps.Weather.Snapshot())
	})

	v1.Get("/solar/state", func(c *fiber.Ctx) error {
		return c.JSON(deps.Solar.Snapshot())
	})

	v1.Post("/solar/fetch", func(c *fiber.Ctx) error {
		q, err := parseCoordQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		deps.Solar.FetchSolarData(c.UserContext(), q.Lat, q.Lon)
		return c.JSON(deps.Solar.Snapshot())
	})

	// The horizon is clamped by the state rather than rejected.
	v1.Post("/solar/predictions", func(c *fiber.Ctx) error {
		var q forecastQuery
		if err := q.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		deps.Solar.GeneratePredictions(c.UserContext(), q.Lat, q.Lon, q.Days)
		return c.JSON(deps.Solar.Snapshot())
	})

	v1.Post("/solar/select", func(c *fiber.Ctx) error {
		var rec solar.Record
		if err := c.BodyParser(&rec); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		deps.Solar.SelectLocation(rec)
		return c.JSON(deps.Solar.Snapshot())
	})

	v1.Get("/sites", func(c *fiber.Ctx) error {
		q := siteQuery{Region: c.Query("region"), Search: c.Query("q")}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		sites := deps.Catalog.Filter(catalog.Region(q.Region), q.Search)
		return c.JSON(fiber.Map{
			"sites":   sites,
			"count":   len(sites),
			"regions": deps.Catalog.Regions(),
			"stats":   deps.Catalog.Stats(),
		})
	})

	v1.Get("/dashboard", func(c *fiber.Ctx) error {
		return c.JSON(deps.Board.View())
	})
}
