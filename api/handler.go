package api

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/mahmoudkheyrati/cpu-scheduler/config"
	"github.com/mahmoudkheyrati/cpu-scheduler/internal/comparison"
	"github.com/mahmoudkheyrati/cpu-scheduler/internal/core"
	"github.com/mahmoudkheyrati/cpu-scheduler/internal/playback"
	"github.com/mahmoudkheyrati/cpu-scheduler/internal/requests"
	"github.com/mahmoudkheyrati/cpu-scheduler/internal/responses"
	"github.com/mahmoudkheyrati/cpu-scheduler/internal/schedulers"
	"github.com/mahmoudkheyrati/cpu-scheduler/internal/workload"
)

type SchedulerHandler interface {
	Schedule(ctx *fiber.Ctx) error
	FirstComeFirstServe(ctx *fiber.Ctx) error
	ShortestJobFirst(ctx *fiber.Ctx) error
	ShortestRemainingTimeFirst(ctx *fiber.Ctx) error
	RoundRobin(ctx *fiber.Ctx) error
	Priority(ctx *fiber.Ctx) error
	PreemptivePriority(ctx *fiber.Ctx) error
	AllAlgorithms(ctx *fiber.Ctx) error
	RandomJobs(ctx *fiber.Ctx) error

	CreatePlayback(ctx *fiber.Ctx) error
	GetPlayback(ctx *fiber.Ctx) error
	PausePlayback(ctx *fiber.Ctx) error
	ResumePlayback(ctx *fiber.Ctx) error
	SetPlaybackSpeed(ctx *fiber.Ctx) error
	DeletePlayback(ctx *fiber.Ctx) error
}

type SchedulerHandlerImpl struct {
	config   *config.SchedulerConfig
	sessions *playbackSessions
}

// NewSchedulerHandlerImpl builds the handler; opts are applied to every
// playback controller it creates.
func NewSchedulerHandlerImpl(config *config.SchedulerConfig, opts ...playback.Option) *SchedulerHandlerImpl {
	return &SchedulerHandlerImpl{config: config, sessions: newPlaybackSessions(opts)}
}

func invalidRequest(ctx *fiber.Ctx, err error) error {
	logrus.Debugf("invalid request body on %s: %v", ctx.Path(), err)
	return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request format"})
}

func failed(ctx *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrInvalidProcess),
		errors.Is(err, core.ErrInvalidParameter),
		errors.Is(err, comparison.ErrInsufficientPolicySelection),
		errors.Is(err, playback.ErrInvalidSpeed),
		errors.Is(err, playback.ErrNoSequence):
		status = fiber.StatusBadRequest
		logrus.Warnf("rejected %s: %v", ctx.Path(), err)
	default:
		logrus.Errorf("%s failed: %v", ctx.Path(), err)
	}
	return ctx.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// defaultParams are the configured values for fields a request omits.
func (s *SchedulerHandlerImpl) defaultParams() schedulers.Params {
	return schedulers.Params{
		TimeQuantum:       s.config.RoundRobinTimeQuantum,
		ContextSwitchTime: s.config.ContextSwitchTime,
	}
}

// run validates the request, generates the sequence and derives its metrics.
func (s *SchedulerHandlerImpl) run(request requests.ScheduleRequest, policy schedulers.Policy) (responses.ScheduleResponse, []core.Process, error) {
	processes, err := requests.Processes(request.Jobs)
	if err != nil {
		return responses.ScheduleResponse{}, nil, err
	}
	steps, err := schedulers.Generate(policy, processes, request.Params(s.defaultParams()))
	if err != nil {
		return responses.ScheduleResponse{}, nil, err
	}
	details, summary := schedulers.CalculateMetrics(processes, steps)
	return responses.NewScheduleResponse(policy, steps, details, summary), processes, nil
}

func (s *SchedulerHandlerImpl) schedule(ctx *fiber.Ctx, fixed schedulers.Policy) error {
	var request requests.ScheduleRequest
	if err := ctx.BodyParser(&request); err != nil {
		return invalidRequest(ctx, err)
	}
	policy := fixed
	if policy == "" {
		p, err := schedulers.ParsePolicy(request.Algorithm)
		if err != nil {
			return failed(ctx, err)
		}
		policy = p
	}
	response, _, err := s.run(request, policy)
	if err != nil {
		return failed(ctx, err)
	}
	return ctx.JSON(response)
}

func (s *SchedulerHandlerImpl) Schedule(ctx *fiber.Ctx) error {
	return s.schedule(ctx, "")
}

func (s *SchedulerHandlerImpl) FirstComeFirstServe(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.FCFS)
}

func (s *SchedulerHandlerImpl) ShortestJobFirst(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.SJF)
}

func (s *SchedulerHandlerImpl) ShortestRemainingTimeFirst(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.SRTF)
}

func (s *SchedulerHandlerImpl) RoundRobin(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.RoundRobin)
}

func (s *SchedulerHandlerImpl) Priority(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.Priority)
}

func (s *SchedulerHandlerImpl) PreemptivePriority(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.PriorityPreemptive)
}

func (s *SchedulerHandlerImpl) AllAlgorithms(ctx *fiber.Ctx) error {
	var request requests.CompareRequest
	if err := ctx.BodyParser(&request); err != nil {
		return invalidRequest(ctx, err)
	}
	policies, err := request.Policies()
	if err != nil {
		return failed(ctx, err)
	}
	processes, err := requests.Processes(request.Jobs)
	if err != nil {
		return failed(ctx, err)
	}
	result, err := comparison.Compare(processes, policies, request.Params(s.defaultParams()))
	if err != nil {
		return failed(ctx, err)
	}
	return ctx.JSON(responses.NewCompareResponse(result))
}

func (s *SchedulerHandlerImpl) RandomJobs(ctx *fiber.Ctx) error {
	count, err := strconv.Atoi(ctx.Query("count", "5"))
	if err != nil {
		return invalidRequest(ctx, err)
	}
	seed, err := strconv.ParseInt(ctx.Query("seed", "0"), 10, 64)
	if err != nil {
		return invalidRequest(ctx, err)
	}
	withPriority, err := strconv.ParseBool(ctx.Query("priority", "false"))
	if err != nil {
		return invalidRequest(ctx, err)
	}
	processes, err := workload.Random(count, seed, withPriority)
	if err != nil {
		return failed(ctx, err)
	}
	return ctx.JSON(responses.RandomResponse{Jobs: requests.Jobs(processes)})
}
