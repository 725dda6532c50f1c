package httpapi

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/juaquiro/forecastLocalWeather/internal/forecast"
	"github.com/juaquiro/forecastLocalWeather/internal/nowcast"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app. The routes
// are the lifecycle commands of the recording tool: add a reading, ask
// for the trend, export/start a new session, and feed the nowcaster.
func RegisterRoutes(app *fiber.App, service *forecast.Service, engine *nowcast.Engine) {
	v1 := app.Group("/api/v1")

	v1.Post("/readings", func(c *fiber.Ctx) error {
		var req readingRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid reading payload")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		count := service.AddReading(req.toReading())

		resp := fiber.Map{"readings": count}
		trend, err := service.Trend()
		if errors.Is(err, forecast.ErrInsufficientData) {
			resp["needMoreData"] = true
		} else {
			resp["trend"] = trend
		}
		return c.Status(fiber.StatusCreated).JSON(resp)
	})

	v1.Get("/trend", func(c *fiber.Ctx) error {
		trend, err := service.Trend()
		if err != nil {
			if errors.Is(err, forecast.ErrInsufficientData) {
				return fiber.NewError(fiber.StatusUnprocessableEntity, "not enough readings to classify a trend")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to classify trend")
		}
		return c.JSON(fiber.Map{"trend": trend})
	})

	v1.Get("/session", func(c *fiber.Ctx) error {
		info, readings := service.Session()
		return c.JSON(fiber.Map{
			"id":        info.ID,
			"startedAt": info.StartedAt,
			"count":     len(readings),
			"readings":  readings,
		})
	})

	v1.Post("/session/export", func(c *fiber.Ctx) error {
		name, exported, err := service.NewSession()
		if err != nil {
			// The session is preserved; the caller may retry.
			return fiber.NewError(fiber.StatusInternalServerError, "failed to export session log")
		}
		resp := fiber.Map{"exported": exported}
		if exported {
			resp["file"] = name
		}
		return c.JSON(resp)
	})

	v1.Post("/nowcast/samples", func(c *fiber.Ctx) error {
		var req sampleRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid sample payload")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		engine.AddSample(req.toSample())
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"samples": engine.Len()})
	})

	v1.Get("/nowcast", func(c *fiber.Ctx) error {
		return c.JSON(engine.Evaluate())
	})
}

// readingRequest holds a proposed session reading. Fields are pointers
// so a missing field is rejected instead of defaulting to zero.
type readingRequest struct {
	Timestamp    *time.Time `json:"timestamp"`
	AltitudeM    *float64   `json:"altitudeM" validate:"required,gte=-500,lte=9000"`
	TemperatureC *float64   `json:"temperatureC" validate:"required,gte=-90,lte=60"`
	DewPointC    *float64   `json:"dewPointC" validate:"required,gte=-90,lte=60"`
	HumidityPct  *float64   `json:"humidityPercent" validate:"required,gte=0,lte=100"`
}

func (r readingRequest) toReading() forecast.Reading {
	out := forecast.Reading{
		AltitudeM:    *r.AltitudeM,
		TemperatureC: *r.TemperatureC,
		DewPointC:    *r.DewPointC,
		HumidityPct:  *r.HumidityPct,
	}
	if r.Timestamp != nil {
		out.Timestamp = *r.Timestamp
	}
	return out
}

// sampleRequest holds a proposed nowcast sample.
type sampleRequest struct {
	Timestamp    *time.Time `json:"timestamp"`
	AltitudeM    *float64   `json:"altitudeM" validate:"required,gte=-500,lte=9000"`
	TemperatureC *float64   `json:"temperatureC" validate:"required,gte=-90,lte=60"`
	DewPointC    *float64   `json:"dewPointC" validate:"required,gte=-90,lte=60"`
	HumidityPct  *float64   `json:"humidityPercent" validate:"required,gte=0,lte=100"`
	PressureHPa  *float64   `json:"pressureHpa" validate:"required,gte=300,lte=1100"`
	MeasuredLCLM *float64   `json:"measuredLclM" validate:"omitempty,gte=0"`
}

func (r sampleRequest) toSample() nowcast.Sample {
	out := nowcast.Sample{
		AltitudeM:    *r.AltitudeM,
		TemperatureC: *r.TemperatureC,
		DewPointC:    *r.DewPointC,
		HumidityPct:  *r.HumidityPct,
		PressureHPa:  *r.PressureHPa,
		MeasuredLCLM: r.MeasuredLCLM,
	}
	if r.Timestamp != nil {
		out.Timestamp = *r.Timestamp
	}
	return out
}
