package infer

import (
	"github.com/flowsight/flowinfer/inference"
	"github.com/flowsight/flowinfer/logger"
	"github.com/flowsight/flowinfer/utils"
	"github.com/urfave/cli/v2"
)

// GenerateCommand data structure for the generate app.
var GenerateCommand = cli.Command{
	Action:    generateAction,
	Name:      "generate",
	Usage:     "generate a default model file",
	ArgsUsage: "",
	Flags: []cli.Flag{
		&utils.OutputFlag,
		&logger.LogLevelFlag,
	},
	Description: `
The generate command produces a model.json file with the default
splitter configuration: one measured feed stream and two unmeasured
outlet streams constrained by a mass balance.`,
}

// generateAction writes the default model configuration as a JSON file.
func generateAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx, utils.NoArgs)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Generate")

	m := inference.NewDefaultModel()

	outputFileName := cfg.Output
	if outputFileName == "" {
		outputFileName = "./model.json"
	}
	log.Noticef("Write model file %v", outputFileName)
	return m.WriteJSON(outputFileName)
}
