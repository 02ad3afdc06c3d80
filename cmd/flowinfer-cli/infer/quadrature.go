package infer

import (
	"github.com/flowsight/flowinfer/inference"
	"github.com/flowsight/flowinfer/inference/quadrature"
	"github.com/flowsight/flowinfer/logger"
	"github.com/flowsight/flowinfer/utils"
	"github.com/urfave/cli/v2"
)

// QuadratureCommand data structure for the quadrature app.
var QuadratureCommand = cli.Command{
	Action:    quadratureAction,
	Name:      "quadrature",
	Usage:     "compute the evidence and marginal densities by grid quadrature",
	ArgsUsage: "<model.json>",
	Flags: []cli.Flag{
		&utils.GridPointsFlag,
		&utils.OutputFlag,
		&logger.LogLevelFlag,
	},
	Description: `
The quadrature command requires one argument:
<model.json>

<model.json> is the model file produced by the generate command.`,
}

// quadratureAction integrates the posterior on a grid and writes the
// marginal densities into a results file.
func quadratureAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx, utils.PathArg)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Quadrature")

	log.Infof("Read model file %v", cfg.ModelFile)
	m, err := inference.ReadModel(cfg.ModelFile)
	if err != nil {
		return err
	}

	log.Noticef("Integrate posterior on a %v^3 grid", cfg.GridPoints)
	res, err := quadrature.Integrate(m, cfg.GridPoints)
	if err != nil {
		return err
	}
	log.Noticef("Evidence Z = %v", res.Z)

	results := &inference.ResultsJSON{
		Model:      inference.NewModelJSON(m),
		GridPoints: cfg.GridPoints,
		Z:          res.Z,
		Axes:       [3][]float64{res.Grid.Axis(0), res.Grid.Axis(1), res.Grid.Axis(2)},
		Marginals:  res.Marginals,
		Pair:       res.Pair,
	}
	outputFileName := cfg.Output
	if outputFileName == "" {
		outputFileName = "./results.json"
	}
	log.Noticef("Write results file %v", outputFileName)
	return results.WriteJSON(outputFileName)
}
