package server

import (
	"encoding/json"
	"log"

	"backend-shaketrack/internal/auth"
	"backend-shaketrack/internal/config"
	"backend-shaketrack/internal/ingest"
	"backend-shaketrack/internal/motion"
	"backend-shaketrack/internal/position"
	"backend-shaketrack/internal/render"
	"backend-shaketrack/internal/stream"
	"backend-shaketrack/internal/track"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App      *fiber.App
	Cfg      config.Config
	Redis    *redis.Client
	Stream   *stream.Hub
	Recorder *track.Recorder
	Provider *position.IngestProvider

	// push is non-nil only when the motion source is "push".
	push *motion.PushSampler
}

func NewServer(cfg config.Config, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	hub := stream.NewHub(redisClient)
	provider := position.NewIngestProvider(redisClient)

	push, sampler := buildSampler(cfg)

	recorder := track.NewRecorder(sampler, provider, track.Options{
		FixTimeout:   cfg.FixTimeout(),
		ClearOnStart: cfg.ClearOnStart,
		StampAtEvent: cfg.StampAtEvent,
	}, func(sessionID string, rec track.Record) {
		payload, err := json.Marshal(rec)
		if err != nil {
			return
		}
		hub.Broadcast(sessionID, payload)
	})

	s := &Server{
		App:      app,
		Cfg:      cfg,
		Redis:    redisClient,
		Stream:   hub,
		Recorder: recorder,
		Provider: provider,
		push:     push,
	}

	registerRoutes(s)
	return s
}

func buildSampler(cfg config.Config) (*motion.PushSampler, motion.Sampler) {
	switch cfg.MotionSource {
	case "sim":
		return nil, motion.NewSimSampler(cfg.SimInterval())
	case "kafka":
		return nil, &motion.KafkaSampler{
			Brokers: cfg.KafkaBrokerList(),
			Topic:   cfg.KafkaTopic,
			GroupID: cfg.KafkaGroup,
		}
	case "push":
	default:
		log.Printf("unknown motion source %q, using push", cfg.MotionSource)
	}
	push := motion.NewPushSampler()
	return push, push
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.Cfg.DeviceKey, s.Cfg.DeviceKeyHash))

	trackGroup := s.App.Group("/track")
	track.RegisterRoutes(trackGroup, s.Recorder, jwtMiddleware)
	render.RegisterRoutes(trackGroup, s.Recorder)

	ingest.RegisterRoutes(s.App.Group("/ingest"), s.push, s.Provider, jwtMiddleware)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}
