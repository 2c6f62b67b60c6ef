package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/solar-dashboard/internal/generator"
	"github.com/i474232898/solar-dashboard/internal/geo"
)

// RegisterDataRoutes serves the synthetic weather and solar readings under
// /api. Paths and query parameters match what dataclient requests.
func RegisterDataRoutes(app fiber.Router, gen *generator.Generator) {
	api := app.Group("/api")

	api.Get("/weather", func(c *fiber.Ctx) error {
		q, err := parseCoordQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(gen.Weather(geo.Coordinates{q.Lat, q.Lon}))
	})

	api.Get("/solar", func(c *fiber.Ctx) error {
		q, err := parseCoordQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(gen.Solar(geo.Coordinates{q.Lat, q.Lon}))
	})

	api.Get("/solar/predictions", func(c *fiber.Ctx) error {
		var q forecastQuery
		if err := q.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(gen.Predictions(geo.Coordinates{q.Lat, q.Lon}, q.Days))
	})
}
