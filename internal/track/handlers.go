package track

import (
	"errors"

	"backend-shaketrack/internal/position"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, rec *Recorder, authMiddleware fiber.Handler) {
	r.Post("/start", authMiddleware, func(c *fiber.Ctx) error {
		if err := rec.Start(c.Context()); err != nil {
			switch {
			case errors.Is(err, position.ErrPermissionDenied):
				return fiber.NewError(fiber.StatusForbidden, err.Error())
			case errors.Is(err, ErrAlreadyRecording):
				return fiber.NewError(fiber.StatusConflict, err.Error())
			case errors.Is(err, ErrInitialFix):
				return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
			default:
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"session_id": rec.SessionID(),
			"state":      rec.State(),
			"region":     rec.Region(),
		})
	})

	r.Post("/stop", authMiddleware, func(c *fiber.Ctx) error {
		rec.Stop()
		return c.JSON(fiber.Map{"state": rec.State()})
	})

	r.Get("/state", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"session_id":      rec.SessionID(),
			"state":           rec.State(),
			"record_count":    rec.Len(),
			"dropped_samples": rec.DroppedSamples(),
			"region":          rec.Region(),
		})
	})

	r.Get("/records", func(c *fiber.Ctx) error {
		return c.JSON(rec.Snapshot())
	})

	r.Get("/projection", func(c *fiber.Ctx) error {
		return c.JSON(Project(rec.Snapshot()))
	})

	r.Get("/summary", func(c *fiber.Ctx) error {
		return c.JSON(rec.Summarize())
	})

	r.Get("/region", func(c *fiber.Ctx) error {
		return c.JSON(rec.Region())
	})
}
