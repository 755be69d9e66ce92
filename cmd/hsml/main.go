// Command hsml builds Stark and Zeeman interaction matrices for a Rydberg
// basis described by a YAML run file, caching them as .npz archives.
//
//	hsml -config run.yaml -kind stark -angle 45 -save
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/katalvlaran/hsml/config"
	"github.com/katalvlaran/hsml/interaction"
	"github.com/katalvlaran/hsml/logging"
	"github.com/katalvlaran/hsml/quantum"
	"github.com/katalvlaran/hsml/radial"
	"github.com/katalvlaran/hsml/store"
)

var exitFunc = os.Exit

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args, os.Stdout, os.Stderr)
	stop()
	exitFunc(code)
}

type flags struct {
	config   string
	env      string
	kinds    string
	angle    float64
	workers  int
	save     bool
	load     bool
	quiet    bool
	spectrum bool
}

func parseFlags(args []string, stderr io.Writer) (flags, map[string]bool, error) {
	var f flags
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.config, "config", "", "YAML run file")
	fs.StringVar(&f.env, "env", ".env", "dotenv file with HSML_* overrides")
	fs.StringVar(&f.kinds, "kind", "", "comma-separated interactions (stark,zeeman)")
	fs.Float64Var(&f.angle, "angle", 0, "field angle in degrees")
	fs.IntVar(&f.workers, "workers", 1, "assembly goroutines (0 = GOMAXPROCS)")
	fs.BoolVar(&f.save, "save", false, "save computed matrices")
	fs.BoolVar(&f.load, "load", false, "load matrices from the cache when present")
	fs.BoolVar(&f.quiet, "quiet", false, "disable the progress bar")
	fs.BoolVar(&f.spectrum, "spectrum", false, "report the eigenvalue range of each matrix")
	if err := fs.Parse(args[1:]); err != nil {
		return flags{}, nil, err
	}
	set := make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	return f, set, nil
}

// applyFlags overrides cfg with the flags given on the command line.
func applyFlags(cfg *config.Config, f flags, set map[string]bool) error {
	if set["kind"] {
		cfg.Kinds = cfg.Kinds[:0]
		for _, name := range strings.Split(f.kinds, ",") {
			k, err := interaction.ParseKind(name)
			if err != nil {
				return err
			}
			cfg.Kinds = append(cfg.Kinds, k)
		}
	}
	if set["angle"] {
		cfg.Interaction.FieldAngle = f.angle
	}
	if set["workers"] {
		cfg.Interaction.Workers = f.workers
	}
	if set["save"] {
		cfg.Interaction.SaveMatrices = f.save
	}
	if set["load"] {
		cfg.Interaction.LoadMatrices = f.load
	}
	if set["quiet"] {
		cfg.Interaction.Progress.Disable = f.quiet
	}
	if set["spectrum"] {
		cfg.Spectrum = f.spectrum
	}

	return cfg.Interaction.Validate()
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	f, set, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}

		return 2
	}
	cfg, err := config.Load(f.config, f.env)
	if err == nil {
		err = applyFlags(&cfg, f, set)
	}
	if err != nil {
		color.New(color.FgRed).Fprintf(stderr, "hsml: %v\n", err)

		return 1
	}

	cfg.Log.Console = stderr
	log, err := logging.New(cfg.Log)
	if err != nil {
		color.New(color.FgRed).Fprintf(stderr, "hsml: %v\n", err)

		return 1
	}
	defer log.Close()

	if err := execute(ctx, cfg, log.Logger, stdout, stderr); err != nil {
		log.Error("run failed", zap.Error(err))
		color.New(color.FgRed).Fprintf(stderr, "hsml: %v\n", err)

		return 1
	}

	return 0
}

func execute(ctx context.Context, cfg config.Config, log *zap.Logger, stdout, stderr io.Writer) error {
	basis, err := quantum.NewBasis(cfg.Basis, quantum.WithQuantumDefects(cfg.QuantumDefects))
	if err != nil {
		return err
	}
	memo, err := radial.NewMemo(radial.NewNumerov(radial.WithStep(cfg.Radial.Step)), cfg.Radial.MemoSize)
	if err != nil {
		return err
	}
	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return err
	}
	reg := prometheus.NewRegistry()
	metrics, err := interaction.NewMetrics(reg)
	if err != nil {
		return err
	}
	log.Info("basis ready",
		zap.Int("states", basis.Len()),
		zap.Int("n_min", cfg.Basis.NMin),
		zap.Int("n_max", cfg.Basis.NMax),
		zap.String("store", string(st.Driver())),
	)

	for _, kind := range cfg.Kinds {
		b, err := interaction.NewBuilder(kind, basis,
			interaction.WithRadial(memo),
			interaction.WithStore(st),
			interaction.WithLogger(log),
			interaction.WithProgress(newBar(stderr)),
			interaction.WithMetrics(metrics),
		)
		if err != nil {
			return err
		}
		m, err := b.Build(ctx, cfg.Interaction)
		if err != nil {
			return fmt.Errorf("%v: %w", kind, err)
		}
		sum := summarize(m)
		if cfg.Spectrum {
			if err := sum.addSpectrum(m); err != nil {
				log.Warn("spectrum unavailable", zap.Stringer("kind", kind), zap.Error(err))
			}
		}
		printSummary(stdout, kind, sum, st.Locate(interaction.CacheKey(kind, basis.Params(), cfg.Interaction)))
	}

	if cfg.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(cfg.MetricsFile, reg); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
		log.Debug("metrics written", zap.String("path", cfg.MetricsFile))
	}

	return nil
}
