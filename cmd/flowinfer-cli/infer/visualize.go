package infer

import (
	"github.com/flowsight/flowinfer/inference"
	"github.com/flowsight/flowinfer/inference/visualizer"
	"github.com/flowsight/flowinfer/logger"
	"github.com/flowsight/flowinfer/utils"
	"github.com/urfave/cli/v2"
)

// VisualizeCommand data structure for the visualize app.
var VisualizeCommand = cli.Command{
	Action:    visualizeAction,
	Name:      "visualize",
	Usage:     "produces a graphical view of an inference results file",
	ArgsUsage: "<results.json>",
	Flags: []cli.Flag{
		&utils.PortFlag,
		&logger.LogLevelFlag,
	},
	Description: `
The visualize command requires one argument:
<results.json>

<results.json> is the results file produced by the quadrature or the
compare command.`,
}

// visualizeAction implements the visualize command serving result charts.
func visualizeAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx, utils.PathArg)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Visualize")

	log.Infof("Read results file %v", cfg.ModelFile)
	results, err := inference.ReadResults(cfg.ModelFile)
	if err != nil {
		return err
	}

	log.Noticef("Open web browser with http://localhost:" + cfg.Port)
	log.Notice("Cancel visualize with ^C")
	visualizer.FireUpWeb(results, cfg.Port)

	return nil
}
