package main

import (
	"context"
	"testing"

	"github.com/Faultbox/physanim/internal/config"
	"github.com/Faultbox/physanim/internal/footik"
	"github.com/Faultbox/physanim/internal/sim"
)

func TestSimulateDefaultScene(t *testing.T) {
	cfg := config.Default()
	cfg.Sim.Ticks = 120
	cfg.Sim.ReportEvery = 0

	if err := simulate(context.Background(), cfg); err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
}

func TestSimulateMissingScene(t *testing.T) {
	cfg := config.Default()
	cfg.Sim.Scene = "/nonexistent/scene.yaml"

	if err := simulate(context.Background(), cfg); err == nil {
		t.Error("expected error for missing scene")
	}
}

func TestSimulateCancelled(t *testing.T) {
	cfg := config.Default()
	cfg.Sim.Ticks = 0

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := simulate(ctx, cfg); err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
}

func TestReportFields(t *testing.T) {
	fields := reportFields(sim.Stats{Ticks: 3}, footik.State{})
	if len(fields) != 13 {
		t.Errorf("expected 13 fields, got %d", len(fields))
	}
	if fields[0].Key != "tick" || fields[0].Integer != 3 {
		t.Errorf("unexpected first field %+v", fields[0])
	}
}

func TestSceneName(t *testing.T) {
	cfg := config.Default()
	if got := sceneName(cfg); got != "default" {
		t.Errorf("sceneName() = %q, want default", got)
	}
	cfg.Sim.Scene = "ramp.yaml"
	if got := sceneName(cfg); got != "ramp.yaml" {
		t.Errorf("sceneName() = %q, want ramp.yaml", got)
	}
}
