package footik

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/physanim/internal/logger"
)

// Solver runs the foot IK for one character. It is not safe for concurrent
// use; call Update from the simulation thread only.
type Solver struct {
	params Params
	host   Host

	baseHalfHeight float32
	state          State
	initialized    bool
}

// NewSolver validates params and binds the solver to its host.
func NewSolver(params Params, host Host) (*Solver, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if host.World == nil || host.Skeleton == nil || host.Capsule == nil || host.Actor == nil {
		return nil, fmt.Errorf("%w: host is missing a collaborator", ErrInvalidParams)
	}
	return &Solver{params: params, host: host}, nil
}

// Initialize resets all corrections and captures the capsule's current
// half-height as the neutral baseline. Both foot sockets must resolve.
func (s *Solver) Initialize() error {
	for _, name := range []string{s.params.LeftFootSocket, s.params.RightFootSocket} {
		if _, ok := s.host.Skeleton.SocketLocation(name); !ok {
			return fmt.Errorf("%w: %q", ErrMissingSocket, name)
		}
	}

	s.baseHalfHeight = s.host.Capsule.HalfHeight()
	s.state = State{
		Left:  FootState{Socket: s.params.LeftFootSocket},
		Right: FootState{Socket: s.params.RightFootSocket},
		Hip:   HipState{CapsuleHalfHeight: s.baseHalfHeight},
	}
	s.initialized = true

	logger.Debug("foot IK initialized",
		zap.String("left", s.params.LeftFootSocket),
		zap.String("right", s.params.RightFootSocket),
		zap.Float32("base_half_height", s.baseHalfHeight),
		zap.Stringer("frame", s.params.Frame),
	)
	return nil
}

// Params returns the solver's parameters.
func (s *Solver) Params() Params {
	return s.params
}

// BaseHalfHeight returns the neutral capsule half-height.
func (s *Solver) BaseHalfHeight() float32 {
	return s.baseHalfHeight
}

// State returns the latest corrections.
func (s *Solver) State() State {
	return s.state
}

// Update advances the solver by dt seconds: both foot traces, then the hip,
// then both effectors. Each stage reads the values this tick's earlier
// stages produced. The new capsule half-height is written to the host.
func (s *Solver) Update(dt float32) (State, error) {
	if !s.initialized {
		return s.state, ErrNotInitialized
	}
	if err := checkDelta(dt); err != nil {
		return s.state, err
	}

	next := s.state
	next.Left = s.traceFoot(FootLeft, next.Left, dt)
	next.Right = s.traceFoot(FootRight, next.Right, dt)

	next.Hip = UpdateHip(next.Hip, next.Left.Offset, next.Right.Offset,
		s.baseHalfHeight, s.host.Capsule.HalfHeight(), s.params, dt)
	s.host.Capsule.SetHalfHeight(next.Hip.CapsuleHalfHeight)

	next.Left.Effector = UpdateFootEffector(next.Left.Effector, next.Left.Offset, next.Hip.Offset, s.params, dt)
	next.Right.Effector = UpdateFootEffector(next.Right.Effector, next.Right.Offset, next.Hip.Offset, s.params, dt)

	s.state = next
	return next, nil
}

func (s *Solver) traceFoot(foot Foot, prev FootState, dt float32) FootState {
	socket, ok := s.host.Skeleton.SocketLocation(prev.Socket)
	if !ok {
		// Sockets were checked in Initialize; a skeleton that lost one since
		// is treated like a probe that found nothing.
		return TraceFoot(prev, Hit{}, false, s.params, dt)
	}

	probe := FootProbe(s.params.Frame, socket, s.host.Actor.Location(), s.baseHalfHeight, s.params.TraceDistance)
	hit, hitOK := s.host.World.Raycast(probe.Start, probe.End)
	next := TraceFoot(prev, hit, hitOK, s.params, dt)

	if next.Grounded != prev.Grounded {
		if next.Grounded {
			logger.Debug("foot found ground",
				zap.Stringer("foot", foot),
				zap.Float32("offset", next.Offset),
			)
		} else {
			logger.Debug("foot lost ground", zap.Stringer("foot", foot))
		}
	}
	return next
}
