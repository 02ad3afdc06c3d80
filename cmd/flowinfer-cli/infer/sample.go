package infer

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/flowsight/flowinfer/inference"
	"github.com/flowsight/flowinfer/inference/sampler"
	"github.com/flowsight/flowinfer/logger"
	"github.com/flowsight/flowinfer/utils"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
)

// SampleCommand data structure for the sample app.
var SampleCommand = cli.Command{
	Action:    sampleAction,
	Name:      "sample",
	Usage:     "draw posterior samples with the random-walk Metropolis sampler",
	ArgsUsage: "<model.json>",
	Flags: []cli.Flag{
		&utils.SeedFlag,
		&utils.IterationsFlag,
		&utils.StepFlag,
		&utils.BurnInFlag,
		&utils.ThinFlag,
		&logger.LogLevelFlag,
	},
	Description: `
The sample command requires one argument:
<model.json>

<model.json> is the model file produced by the generate command.`,
}

// sampleAction runs the Metropolis sampler and prints the chain summary.
func sampleAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx, utils.PathArg)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Sample")

	log.Infof("Read model file %v", cfg.ModelFile)
	m, err := inference.ReadModel(cfg.ModelFile)
	if err != nil {
		return err
	}

	rg := rand.New(rand.NewSource(cfg.Seed))
	s, err := sampler.New(m, cfg.Step, rg)
	if err != nil {
		return err
	}

	log.Noticef("Run sampler with %v iterations (seed %v, step %v)", cfg.Iterations, cfg.Seed, cfg.Step)
	start := time.Now()
	chain, err := s.Run(cfg.Iterations)
	if err != nil {
		return err
	}
	hours, minutes, seconds := logger.ParseTime(time.Since(start))
	log.Infof("Sampling finished. Total elapsed time: %vh %vm %vs", hours, minutes, seconds)
	log.Noticef("Acceptance rate: %.4f", chain.AcceptanceRate())

	states := inference.Thin(inference.Discard(chain.States, cfg.BurnIn), cfg.Thin)
	summary, err := inference.Summarize(states)
	if err != nil {
		return err
	}
	printSummary(summary)
	return nil
}

// printSummary prints the chain summary statistics as a table.
func printSummary(s *inference.Summary) {
	tbl := tablewriter.NewWriter(os.Stdout)
	tbl.SetHeader([]string{"Stream", "Mean", "StdDev", "2.5%", "Median", "97.5%"})
	tbl.SetBorder(true)
	for i := 0; i < 3; i++ {
		tbl.Append([]string{
			fmt.Sprintf("x%d", i+1),
			fmt.Sprintf("%.4f", s.Mean[i]),
			fmt.Sprintf("%.4f", s.StdDev[i]),
			fmt.Sprintf("%.4f", s.Lower[i]),
			fmt.Sprintf("%.4f", s.Median[i]),
			fmt.Sprintf("%.4f", s.Upper[i]),
		})
	}
	tbl.Render()
}
