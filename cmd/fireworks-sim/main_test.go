package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/decker502/fireworks/pkg/config"
)

func TestRun_Schedule(t *testing.T) {
	cfg := config.DefaultFireworkConfig()
	s, particles := run(cfg, options{Seed: 1, Ticks: 300, LaunchEvery: 30, SmileEvery: 3})

	if s.Ticks != 300 {
		t.Errorf("Expected 300 ticks, got %d", s.Ticks)
	}
	if s.Launched != 10 || s.Smiles != 3 {
		t.Errorf("Expected 10 launches with 3 smiles, got %d/%d", s.Launched, s.Smiles)
	}
	// nothing lives 300 ticks past launch yet
	if s.Retired != 0 || s.Active != 10 {
		t.Errorf("Expected no retirement, got retired=%d active=%d", s.Retired, s.Active)
	}
	if want := 7*10 + 3*20; s.FinalParticles != want || len(particles) != want {
		t.Errorf("Expected %d particles, got %d (%d returned)", want, s.FinalParticles, len(particles))
	}
	if s.PeakParticles < s.FinalParticles {
		t.Errorf("Expected peak >= final, got %d < %d", s.PeakParticles, s.FinalParticles)
	}
}

func TestRun_RetiresOverLongRuns(t *testing.T) {
	cfg := config.DefaultFireworkConfig()
	s, _ := run(cfg, options{Seed: 2, Ticks: 2000, LaunchEvery: 50})

	if s.Launched != 40 || s.Smiles != 0 {
		t.Errorf("Expected 40 plain launches, got %d (%d smile)", s.Launched, s.Smiles)
	}
	if s.Retired == 0 {
		t.Error("Expected fireworks to retire")
	}
	if s.Launched != s.Retired+s.Active {
		t.Errorf("Expected launched = retired + active, got %d != %d + %d", s.Launched, s.Retired, s.Active)
	}
	if s.Exploded < s.Retired {
		t.Errorf("Expected every retired firework to have exploded, exploded=%d retired=%d", s.Exploded, s.Retired)
	}
}

func TestRun_Deterministic(t *testing.T) {
	cfg := config.DefaultFireworkConfig()
	opts := options{Seed: 9, Ticks: 500, LaunchEvery: 20, SmileEvery: 2}

	s1, p1 := run(cfg, opts)
	s2, p2 := run(cfg, opts)
	if s1 != s2 {
		t.Fatalf("Expected identical summaries, got %+v and %+v", s1, s2)
	}
	for i := range p1 {
		if p1[i] != p2[i] {
			t.Fatalf("Particle %d differs between identical runs", i)
		}
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    options
		wantErr bool
	}{
		{"valid", options{Ticks: 10, LaunchEvery: 1}, false},
		{"negative ticks", options{Ticks: -1, LaunchEvery: 1}, true},
		{"zero launch interval", options{Ticks: 10}, true},
		{"negative smile interval", options{Ticks: 10, LaunchEvery: 1, SmileEvery: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Expected error=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestWriteDump(t *testing.T) {
	cfg := config.DefaultFireworkConfig()
	s, particles := run(cfg, options{Seed: 3, Ticks: 120, LaunchEvery: 60, SmileEvery: 2})

	path := filepath.Join(t.TempDir(), "golden.yaml")
	if err := writeDump(path, 3, s, particles); err != nil {
		t.Fatalf("writeDump failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var dump goldenDump
	if err := yaml.Unmarshal(data, &dump); err != nil {
		t.Fatalf("Failed to parse dump: %v", err)
	}
	if dump.Seed != 3 || dump.Summary != s {
		t.Errorf("Expected seed 3 and matching summary, got %d %+v", dump.Seed, dump.Summary)
	}
	if len(dump.Particles) != 30 {
		t.Fatalf("Expected 30 particles, got %d", len(dump.Particles))
	}
	if dump.Particles[29].Role != "corner" {
		t.Errorf("Expected last smile particle to be a corner, got %s", dump.Particles[29].Role)
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, Summary{Ticks: 12345, PeakParticles: 1000000})

	out := buf.String()
	if !strings.Contains(out, "12,345") || !strings.Contains(out, "1,000,000") {
		t.Errorf("Expected comma-grouped numbers, got:\n%s", out)
	}
}
