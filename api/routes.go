package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewApp wires every route of the scheduler API.
func NewApp(handler SchedulerHandler) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(recover.New())

	api := app.Group("/api")
	v1 := api.Group("/v1")
	{
		v1.Post("/schedule", handler.Schedule)
		v1.Post("/fcfs", handler.FirstComeFirstServe)
		v1.Post("/sjf", handler.ShortestJobFirst)
		v1.Post("/srtf", handler.ShortestRemainingTimeFirst)
		v1.Post("/rr", handler.RoundRobin)
		v1.Post("/priority", handler.Priority)
		v1.Post("/priority-preemptive", handler.PreemptivePriority)
		v1.Post("/all", handler.AllAlgorithms)
		v1.Get("/random", handler.RandomJobs)
	}

	pb := v1.Group("/playback")
	{
		pb.Post("/", handler.CreatePlayback)
		pb.Get("/:id", handler.GetPlayback)
		pb.Post("/:id/pause", handler.PausePlayback)
		pb.Post("/:id/resume", handler.ResumePlayback)
		pb.Put("/:id/speed", handler.SetPlaybackSpeed)
		pb.Delete("/:id", handler.DeletePlayback)
	}
	return app
}
