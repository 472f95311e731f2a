package ingest

import (
	"math"

	"backend-shaketrack/internal/motion"
	"backend-shaketrack/internal/position"

	"github.com/gofiber/fiber/v2"
)

type permissionRequest struct {
	Granted bool `json:"granted"`
}

// validCoords rejects NaN and infinities as well as out-of-range values;
// a single bad fix would otherwise poison the track and its distance
// summary.
func validCoords(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// RegisterRoutes wires the device-facing feed endpoints. sampler is nil
// unless the motion source is "push".
func RegisterRoutes(r fiber.Router, sampler *motion.PushSampler, provider *position.IngestProvider, authMiddleware fiber.Handler) {
	r.Post("/motion", authMiddleware, func(c *fiber.Ctx) error {
		if sampler == nil {
			return fiber.NewError(fiber.StatusConflict, "motion source is not push")
		}
		var req motion.Vector
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		sampler.Push(req)
		return c.SendStatus(fiber.StatusAccepted)
	})

	r.Post("/position", authMiddleware, func(c *fiber.Ctx) error {
		var req position.Fix
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if !validCoords(req.Lat, req.Lng) {
			return fiber.NewError(fiber.StatusBadRequest, "lat/lng out of range")
		}
		provider.Report(req)
		return c.SendStatus(fiber.StatusAccepted)
	})

	r.Post("/permission", authMiddleware, func(c *fiber.Ctx) error {
		var req permissionRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		provider.SetPermission(req.Granted)
		return c.JSON(fiber.Map{"granted": req.Granted})
	})
}
