package api

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mahmoudkheyrati/cpu-scheduler/internal/playback"
	"github.com/mahmoudkheyrati/cpu-scheduler/internal/requests"
	"github.com/mahmoudkheyrati/cpu-scheduler/internal/responses"
	"github.com/mahmoudkheyrati/cpu-scheduler/internal/schedulers"
)

// finishedSessionTTL is how long a finished, unread session is kept.
const finishedSessionTTL = 10 * time.Minute

type playbackSession struct {
	controller *playback.Controller
	lastSeen   time.Time
}

// playbackSessions owns one controller per live replay. A finished session is
// dropped once its final snapshot has been read, or after finishedSessionTTL.
type playbackSessions struct {
	mu       sync.Mutex
	sessions map[string]*playbackSession
	opts     []playback.Option
	now      func() time.Time
}

func newPlaybackSessions(opts []playback.Option) *playbackSessions {
	return &playbackSessions{sessions: make(map[string]*playbackSession), opts: opts, now: time.Now}
}

func (p *playbackSessions) add(c *playback.Controller) string {
	id := uuid.NewString()
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sweepLocked()
	p.sessions[id] = &playbackSession{controller: c, lastSeen: p.now()}
	return id
}

func (p *playbackSessions) get(id string) (*playback.Controller, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	session, ok := p.sessions[id]
	if !ok {
		return nil, false
	}
	session.lastSeen = p.now()
	return session.controller, true
}

func (p *playbackSessions) remove(id string) (*playback.Controller, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	session, ok := p.sessions[id]
	if !ok {
		return nil, false
	}
	delete(p.sessions, id)
	return session.controller, true
}

func (p *playbackSessions) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sessions)
}

func (p *playbackSessions) sweepLocked() {
	cutoff := p.now().Add(-finishedSessionTTL)
	for id, session := range p.sessions {
		if session.controller.State() == playback.StateFinished && session.lastSeen.Before(cutoff) {
			delete(p.sessions, id)
			logrus.Debugf("playback session %s expired", id)
		}
	}
}

func sessionNotFound(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "playback session not found"})
}

func (s *SchedulerHandlerImpl) CreatePlayback(ctx *fiber.Ctx) error {
	var request requests.PlaybackRequest
	if err := ctx.BodyParser(&request); err != nil {
		return invalidRequest(ctx, err)
	}
	policy, err := schedulers.ParsePolicy(request.Algorithm)
	if err != nil {
		return failed(ctx, err)
	}
	response, processes, err := s.run(request.ScheduleRequest, policy)
	if err != nil {
		return failed(ctx, err)
	}

	speed := request.Speed
	if speed == 0 {
		speed = s.config.PlaybackSpeed
	}
	controller := playback.NewController(s.sessions.opts...)
	if err := controller.SetSpeed(speed); err != nil {
		return failed(ctx, err)
	}
	paused := request.StartPaused(s.config.PlaybackStartPaused)
	if err := controller.Load(processes, response.Steps, paused); err != nil {
		return failed(ctx, err)
	}

	id := s.sessions.add(controller)
	logrus.Infof("playback session %s created for %s", id, policy)
	return ctx.Status(fiber.StatusCreated).JSON(responses.PlaybackCreatedResponse{ID: id})
}

func (s *SchedulerHandlerImpl) GetPlayback(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	controller, ok := s.sessions.get(id)
	if !ok {
		return sessionNotFound(ctx)
	}
	snapshot := controller.Snapshot()
	if snapshot.State == playback.StateFinished {
		s.sessions.remove(id)
		logrus.Infof("playback session %s finished and delivered", id)
	}
	return ctx.JSON(snapshot)
}

func (s *SchedulerHandlerImpl) PausePlayback(ctx *fiber.Ctx) error {
	controller, ok := s.sessions.get(ctx.Params("id"))
	if !ok {
		return sessionNotFound(ctx)
	}
	if err := controller.Pause(); err != nil {
		return failed(ctx, err)
	}
	return ctx.JSON(controller.Snapshot())
}

func (s *SchedulerHandlerImpl) ResumePlayback(ctx *fiber.Ctx) error {
	controller, ok := s.sessions.get(ctx.Params("id"))
	if !ok {
		return sessionNotFound(ctx)
	}
	if err := controller.Resume(); err != nil {
		return failed(ctx, err)
	}
	return ctx.JSON(controller.Snapshot())
}

func (s *SchedulerHandlerImpl) SetPlaybackSpeed(ctx *fiber.Ctx) error {
	controller, ok := s.sessions.get(ctx.Params("id"))
	if !ok {
		return sessionNotFound(ctx)
	}
	var request requests.SpeedRequest
	if err := ctx.BodyParser(&request); err != nil {
		return invalidRequest(ctx, err)
	}
	if err := controller.SetSpeed(request.Speed); err != nil {
		return failed(ctx, err)
	}
	return ctx.JSON(controller.Snapshot())
}

func (s *SchedulerHandlerImpl) DeletePlayback(ctx *fiber.Ctx) error {
	controller, ok := s.sessions.remove(ctx.Params("id"))
	if !ok {
		return sessionNotFound(ctx)
	}
	controller.Clear()
	return ctx.SendStatus(fiber.StatusNoContent)
}
