package main

import (
	"fmt"
	"os"

	"github.com/flowsight/flowinfer/cmd/flowinfer-cli/infer"
	"github.com/urfave/cli/v2"
)

// initFlowinferApp initializes a flowinfer-cli app. This function is
// called by the main function and unit tests.
func initFlowinferApp() *cli.App {
	return &cli.App{
		Name:     "FlowInfer Mass-Balance Estimator",
		HelpName: "flowinfer",
		Flags:    []cli.Flag{},
		Commands: []*cli.Command{
			&infer.GenerateCommand,
			&infer.SampleCommand,
			&infer.QuadratureCommand,
			&infer.CompareCommand,
			&infer.VisualizeCommand,
		},
	}
}

// main implements the "flowinfer" cli application.
func main() {
	app := initFlowinferApp()
	if err := app.Run(os.Args); err != nil {
		code := 1
		fmt.Fprintln(os.Stderr, err)
		os.Exit(code)
	}
}
