// Package main runs a standing character on a scene and logs its foot IK.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"go.uber.org/zap"

	"github.com/Faultbox/physanim/internal/character"
	"github.com/Faultbox/physanim/internal/config"
	"github.com/Faultbox/physanim/internal/footik"
	"github.com/Faultbox/physanim/internal/logger"
	"github.com/Faultbox/physanim/internal/sim"
	"github.com/Faultbox/physanim/internal/world"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	os.Exit(run(cfg))
}

func run(cfg *config.Config) (code int) {
	defer logger.Sync()

	logger.Info("=== physanim foot IK ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if cfg.Debug.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Debug.SentryDSN}); err != nil {
			logger.Warn("sentry disabled", zap.Error(err))
		} else {
			defer sentry.Flush(5 * time.Second)
			defer func() {
				if r := recover(); r != nil {
					logger.Error("panic", zap.Any("value", r))
					hub := sentry.CurrentHub().Clone()
					hub.ConfigureScope(func(scope *sentry.Scope) {
						scope.SetTag("scene", sceneName(cfg))
					})
					hub.Recover(r)
					hub.Flush(5 * time.Second)
					code = 2
				}
			}()
		}
	}

	if cfg.Debug.StatsViewAddr != "" {
		// Configuration must be set before statsview.New.
		viewer.SetConfiguration(viewer.WithAddr(cfg.Debug.StatsViewAddr))
		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
		logger.Info("stats viewer started", zap.String("addr", cfg.Debug.StatsViewAddr))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := simulate(ctx, cfg); err != nil {
		logger.Error("simulation failed", zap.Error(err))
		if cfg.Debug.SentryDSN != "" {
			sentry.CaptureException(err)
		}
		return 1
	}

	logger.Info("simulation finished normally")
	return 0
}

func sceneName(cfg *config.Config) string {
	if cfg.Sim.Scene == "" {
		return "default"
	}
	return cfg.Sim.Scene
}

func loadScene(path string) (*world.Scene, error) {
	if path == "" {
		return world.DefaultScene(), nil
	}
	return world.LoadScene(path)
}

func simulate(ctx context.Context, cfg *config.Config) error {
	scene, err := loadScene(cfg.Sim.Scene)
	if err != nil {
		return err
	}
	w, err := scene.Build()
	if err != nil {
		return fmt.Errorf("building scene %s: %w", sceneName(cfg), err)
	}

	chCfg, err := cfg.CharacterSettings()
	if err != nil {
		return err
	}
	ch, err := character.New(chCfg, w)
	if err != nil {
		return fmt.Errorf("creating character: %w", err)
	}
	if err := ch.SetLocation(scene.Spawn.SpawnLocation()); err != nil {
		return err
	}
	ch.SetYaw(scene.Spawn.Yaw)
	ch.SetVelocity(scene.Spawn.SpawnVelocity())

	logger.Info("scene loaded",
		zap.String("name", scene.Name),
		zap.Int("props", len(w.Props())),
		zap.Bool("terrain", w.Terrain() != nil),
	)

	if err := ch.BeginPlay(); err != nil {
		return err
	}

	runner := &sim.Runner{
		Step:        cfg.Sim.Step(),
		Ticks:       cfg.Sim.Ticks,
		Realtime:    cfg.Sim.Realtime,
		ReportEvery: cfg.Sim.ReportEvery,
		Report: func(s sim.Stats) {
			logger.Info("ik report", reportFields(s, ch.IKState())...)
		},
	}
	stats, err := runner.Run(ctx, ch)
	if err != nil {
		return err
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		logger.Info("interrupted")
	}

	logger.Info("final ik state", reportFields(stats, ch.IKState())...)
	return nil
}

func reportFields(s sim.Stats, st footik.State) []zap.Field {
	return []zap.Field{
		zap.Uint64("tick", s.Ticks),
		zap.Uint64("ik_ticks", s.IKTicks),
		zap.Float64("sim_time", s.SimTime),
		zap.Float32("left_offset", st.Left.Offset),
		zap.Float32("right_offset", st.Right.Offset),
		zap.Float32("left_effector", st.Left.Effector),
		zap.Float32("right_effector", st.Right.Effector),
		zap.Float32("left_pitch", st.Left.Tilt.Pitch),
		zap.Float32("left_roll", st.Left.Tilt.Roll),
		zap.Float32("right_pitch", st.Right.Tilt.Pitch),
		zap.Float32("right_roll", st.Right.Tilt.Roll),
		zap.Float32("hip_offset", st.Hip.Offset),
		zap.Float32("capsule_half_height", st.Hip.CapsuleHalfHeight),
	}
}
