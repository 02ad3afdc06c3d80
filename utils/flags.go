package utils

import (
	"github.com/urfave/cli/v2"
)

// Command line options shared by the flowinfer subcommands.
var (
	SeedFlag = cli.Int64Flag{
		Name:  "seed",
		Usage: "seed of the sampler's random generator",
		Value: 4711,
	}
	IterationsFlag = cli.IntFlag{
		Name:  "iterations",
		Usage: "number of sampler iterations",
		Value: 1_500_000,
	}
	StepFlag = cli.Float64Flag{
		Name:  "step",
		Usage: "half-width of the uniform random-walk proposal",
		Value: 0.29,
	}
	GridPointsFlag = cli.IntFlag{
		Name:  "grid-points",
		Usage: "number of grid points per axis for the quadrature",
		Value: 100,
	}
	BurnInFlag = cli.IntFlag{
		Name:  "burn-in",
		Usage: "number of initial chain states discarded before summarizing",
		Value: 10_000,
	}
	ThinFlag = cli.IntFlag{
		Name:  "thin",
		Usage: "keep every k-th chain state when summarizing",
		Value: 1,
	}
	OutputFlag = cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file",
	}
	PortFlag = cli.StringFlag{
		Name:  "port",
		Usage: "port of the visualization web server",
		Value: "8080",
	}
)
