package utils

import (
	"fmt"

	"github.com/flowsight/flowinfer/logger"
	"github.com/urfave/cli/v2"
)

// An enum of argument modes used by the flowinfer subcommands.
type ArgumentMode int

const (
	PathArg ArgumentMode = iota // requires 1 argument: path to a file
	NoArgs                      // requires no arguments
)

// Config is the run configuration of a flowinfer subcommand built from
// the command line context.
type Config struct {
	ModelFile  string  // path of the model or results file argument
	Seed       int64   // seed of the sampler's random generator
	Iterations int     // number of sampler iterations
	Step       float64 // half-width of the uniform random-walk proposal
	GridPoints int     // number of grid points per axis
	BurnIn     int     // number of discarded initial chain states
	Thin       int     // thinning interval of the chain
	Output     string  // output file
	Port       string  // port of the visualization web server
	LogLevel   string  // log level of the app action
}

// NewConfig reads the flags of the command line context into a validated
// run configuration.
func NewConfig(ctx *cli.Context, mode ArgumentMode) (*Config, error) {
	// start from the flag defaults; commands register only the flags
	// they need and the remaining fields keep their default values
	cfg := &Config{
		Seed:       SeedFlag.Value,
		Iterations: IterationsFlag.Value,
		Step:       StepFlag.Value,
		GridPoints: GridPointsFlag.Value,
		BurnIn:     BurnInFlag.Value,
		Thin:       ThinFlag.Value,
		Output:     OutputFlag.Value,
		Port:       PortFlag.Value,
		LogLevel:   logger.LogLevelFlag.Value,
	}
	if ctx.IsSet(SeedFlag.Name) {
		cfg.Seed = ctx.Int64(SeedFlag.Name)
	}
	if ctx.IsSet(IterationsFlag.Name) {
		cfg.Iterations = ctx.Int(IterationsFlag.Name)
	}
	if ctx.IsSet(StepFlag.Name) {
		cfg.Step = ctx.Float64(StepFlag.Name)
	}
	if ctx.IsSet(GridPointsFlag.Name) {
		cfg.GridPoints = ctx.Int(GridPointsFlag.Name)
	}
	if ctx.IsSet(BurnInFlag.Name) {
		cfg.BurnIn = ctx.Int(BurnInFlag.Name)
	}
	if ctx.IsSet(ThinFlag.Name) {
		cfg.Thin = ctx.Int(ThinFlag.Name)
	}
	if ctx.IsSet(OutputFlag.Name) {
		cfg.Output = ctx.String(OutputFlag.Name)
	}
	if ctx.IsSet(PortFlag.Name) {
		cfg.Port = ctx.String(PortFlag.Name)
	}
	if ctx.IsSet(logger.LogLevelFlag.Name) {
		cfg.LogLevel = ctx.String(logger.LogLevelFlag.Name)
	}
	switch mode {
	case PathArg:
		if ctx.Args().Len() != 1 {
			return nil, fmt.Errorf("command requires a file path as argument")
		}
		cfg.ModelFile = ctx.Args().Get(0)
	case NoArgs:
		if ctx.Args().Len() != 0 {
			return nil, fmt.Errorf("command expects no arguments")
		}
	default:
		return nil, fmt.Errorf("unknown argument mode")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the numeric run parameters.
func (cfg *Config) Validate() error {
	if cfg.Iterations <= 0 {
		return fmt.Errorf("config: iteration count must be positive; got %v", cfg.Iterations)
	}
	if cfg.Step <= 0.0 {
		return fmt.Errorf("config: proposal half-width must be positive; got %v", cfg.Step)
	}
	if cfg.GridPoints < 2 {
		return fmt.Errorf("config: at least two grid points per axis required; got %v", cfg.GridPoints)
	}
	if cfg.BurnIn < 0 || cfg.BurnIn >= cfg.Iterations {
		return fmt.Errorf("config: burn-in %v must be within the iteration count %v", cfg.BurnIn, cfg.Iterations)
	}
	if cfg.Thin < 1 {
		return fmt.Errorf("config: thinning interval must be at least one; got %v", cfg.Thin)
	}
	return nil
}
