// Package main runs the firework simulation without a window.
//
// It launches fireworks on a fixed schedule, prints a summary and can dump
// the final particle list as YAML for golden regression checks. The same
// seed and schedule always produce the same dump.
//
// Usage:
//
//	go run ./cmd/fireworks-sim [flags]
//
// Flags:
//
//	--seed <n>          Random seed (default 1)
//	--ticks <n>         Number of ticks to simulate (default 600)
//	--launch-every <n>  Launch one firework every n ticks (default 30)
//	--smile-every <n>   Every n-th launch is a smile burst, 0 disables (default 3)
//	--config <path>     Firework config file (default: built-in constants)
//	--out <path>        Write the final particles as YAML
//	--verbose           Enable verbose logging
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/entities"
	"github.com/decker502/fireworks/pkg/systems"
)

var (
	seedFlag        = flag.Int64("seed", 1, "Random seed")
	ticksFlag       = flag.Int("ticks", 600, "Number of ticks to simulate")
	launchEveryFlag = flag.Int("launch-every", 30, "Launch one firework every n ticks")
	smileEveryFlag  = flag.Int("smile-every", 3, "Every n-th launch is a smile burst (0 = never)")
	configFlag      = flag.String("config", "", "Firework config file")
	outFlag         = flag.String("out", "", "Write the final particles as YAML to this file")
	verboseFlag     = flag.Bool("verbose", false, "Enable verbose logging")
)

// options 一次无窗口运行的参数
type options struct {
	Seed        int64
	Ticks       int
	LaunchEvery int
	SmileEvery  int
}

// Summary 运行统计
type Summary struct {
	Ticks          int `yaml:"ticks"`
	Launched       int `yaml:"launched"`
	Smiles         int `yaml:"smiles"`
	Exploded       int `yaml:"exploded"`
	Retired        int `yaml:"retired"`
	Active         int `yaml:"active"`
	PeakParticles  int `yaml:"peakParticles"`
	FinalParticles int `yaml:"finalParticles"`
}

// particleRecord 导出用的粒子快照
type particleRecord struct {
	Offset   int        `yaml:"offset"`
	Role     string     `yaml:"role"`
	Texture  int        `yaml:"texture"`
	Position [3]float64 `yaml:"position,flow"`
	Velocity [3]float64 `yaml:"velocity,flow"`
	Alpha    float64    `yaml:"alpha"`
	Age      float64    `yaml:"age"`
}

// goldenDump 是 --out 写出的文档
type goldenDump struct {
	Seed      int64            `yaml:"seed"`
	Summary   Summary          `yaml:"summary"`
	Particles []particleRecord `yaml:"particles"`
}

func main() {
	flag.Parse()

	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	cfg := config.DefaultFireworkConfig()
	if *configFlag != "" {
		var err error
		if cfg, err = config.LoadFireworkConfig(*configFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	opts := options{
		Seed:        *seedFlag,
		Ticks:       *ticksFlag,
		LaunchEvery: *launchEveryFlag,
		SmileEvery:  *smileEveryFlag,
	}
	if err := opts.validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	summary, particles := run(cfg, opts)
	printSummary(os.Stdout, summary)

	if *outFlag != "" {
		if err := writeDump(*outFlag, opts.Seed, summary, particles); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s particles to %s\n", humanize.Comma(int64(len(particles))), *outFlag)
	}
}

func (o options) validate() error {
	if o.Ticks < 0 {
		return fmt.Errorf("--ticks must be >= 0, got %d", o.Ticks)
	}
	if o.LaunchEvery < 1 {
		return fmt.Errorf("--launch-every must be >= 1, got %d", o.LaunchEvery)
	}
	if o.SmileEvery < 0 {
		return fmt.Errorf("--smile-every must be >= 0, got %d", o.SmileEvery)
	}
	return nil
}

// run drives a fleet for opts.Ticks ticks and returns the final particles.
//
// A launch happens before the fleet tick whenever the 1-based tick number
// is a multiple of LaunchEvery.
func run(cfg *config.FireworkConfig, opts options) (Summary, []components.Particle) {
	factory := entities.NewFireworkFactory(cfg, rand.New(rand.NewSource(opts.Seed)))
	sys := systems.NewFireworkSystem(cfg, rand.New(rand.NewSource(opts.Seed+1)))
	fleet := systems.NewFleetManager(cfg, sys)

	var s Summary
	for tick := 1; tick <= opts.Ticks; tick++ {
		if tick%opts.LaunchEvery == 0 {
			s.Launched++
			smile := opts.SmileEvery > 0 && s.Launched%opts.SmileEvery == 0
			if smile {
				s.Smiles++
			}
			fleet.Enqueue(factory.Launch(smile, factory.RandomTexture()))
		}

		report := fleet.Tick()
		s.Exploded += report.Explosions
		s.Retired += report.Retired
		if n := fleet.ParticleCount(); n > s.PeakParticles {
			s.PeakParticles = n
		}
		s.Ticks++
	}

	particles := fleet.Flatten()
	s.Active = fleet.Len()
	s.FinalParticles = len(particles)
	log.Printf("[Sim] Finished %d ticks: %+v", s.Ticks, s)
	return s, particles
}

func printSummary(w io.Writer, s Summary) {
	fmt.Fprintf(w, "Ticks:           %s\n", humanize.Comma(int64(s.Ticks)))
	fmt.Fprintf(w, "Launched:        %s (%s smile)\n", humanize.Comma(int64(s.Launched)), humanize.Comma(int64(s.Smiles)))
	fmt.Fprintf(w, "Exploded:        %s\n", humanize.Comma(int64(s.Exploded)))
	fmt.Fprintf(w, "Retired:         %s\n", humanize.Comma(int64(s.Retired)))
	fmt.Fprintf(w, "Active:          %s\n", humanize.Comma(int64(s.Active)))
	fmt.Fprintf(w, "Peak particles:  %s\n", humanize.Comma(int64(s.PeakParticles)))
	fmt.Fprintf(w, "Final particles: %s\n", humanize.Comma(int64(s.FinalParticles)))
}

func toRecords(particles []components.Particle) []particleRecord {
	records := make([]particleRecord, len(particles))
	for i, p := range particles {
		records[i] = particleRecord{
			Offset:   p.Offset,
			Role:     p.Role.String(),
			Texture:  p.Texture.IndexOr(-1),
			Position: [3]float64{p.Position.X, p.Position.Y, p.Position.Z},
			Velocity: [3]float64{p.Velocity.X, p.Velocity.Y, p.Velocity.Z},
			Alpha:    p.Color.A,
			Age:      p.Age,
		}
	}
	return records
}

func writeDump(path string, seed int64, s Summary, particles []components.Particle) error {
	data, err := yaml.Marshal(goldenDump{Seed: seed, Summary: s, Particles: toRecords(particles)})
	if err != nil {
		return fmt.Errorf("failed to encode dump: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write dump: %w", err)
	}
	return nil
}
