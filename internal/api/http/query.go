package httpapi

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/solar-dashboard/internal/solar"
)

var validate = validator.New()

// coordQuery holds the lat/lon query parameters shared by every data route.
type coordQuery struct {
	Lat float64 `validate:"gte=-90,lte=90"`
	Lon float64 `validate:"gte=-180,lte=180"`
}

func parseCoordQuery(c *fiber.Ctx) (coordQuery, error) {
	var q coordQuery

	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	if latStr == "" || lonStr == "" {
		return q, errors.New("lat and lon query parameters are required")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return q, errors.New("lat must be a number")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return q, errors.New("lon must be a number")
	}
	q.Lat = lat
	q.Lon = lon

	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

// forecastQuery adds the forecast horizon to a coordinate pair.
type forecastQuery struct {
	coordQuery
	Days int `validate:"gte=1,lte=30"`
}

func (f *forecastQuery) bind(c *fiber.Ctx) error {
	loc, err := parseCoordQuery(c)
	if err != nil {
		return err
	}
	f.coordQuery = loc

	f.Days = solar.DefaultPredictionDays
	if daysStr := c.Query("days"); daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil {
			return errors.New("days must be an integer")
		}
		f.Days = days
	}
	return nil
}

// siteQuery holds the filters of the site listing.
type siteQuery struct {
	Region string `validate:"omitempty,oneof=all city hill rural coastal desert"`
	Search string `validate:"max=100"`
}

// locationBody is the payload of a location update.
type locationBody struct {
	Location string `json:"location"`
}
