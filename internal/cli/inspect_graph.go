package cli

import (
	"fmt"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"avular-packages/internal/app"
)

type inspectGraphOptions struct {
	resolveOptions
	DiffAgainst string
	SaveTo      string
}

func newInspectGraphCommand() *cobra.Command {
	opts := inspectGraphOptions{}
	cmd := &cobra.Command{
		Use:   "inspect-graph",
		Short: "Resolve package requests and print the full decision graph",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspectGraph(cmd, opts, args)
		},
	}
	addResolveFlags(cmd, &opts.resolveOptions)
	cmd.Flags().StringVar(&opts.DiffAgainst, "diff", "", "Diff against a report saved by a previous --save run")
	cmd.Flags().StringVar(&opts.SaveTo, "save", "", "Save this run's report to path for a future --diff")
	return cmd
}

func runInspectGraph(cmd *cobra.Command, opts inspectGraphOptions, args []string) error {
	req, err := buildResolveRequest(cmd, opts.resolveOptions, args)
	if err != nil {
		return err
	}
	service := newAppService()
	report, solveErr := service.InspectGraph(cmd.Context(), req)

	if opts.DiffAgainst != "" {
		previous, err := loadGraphReport(opts.DiffAgainst)
		if err != nil {
			return err
		}
		if diff := app.DiffGraphReports(previous, report); diff != "" {
			fmt.Print(diff)
		} else {
			fmt.Println("no differences")
		}
	} else {
		printGraphReport(report)
	}

	if opts.SaveTo != "" {
		if err := saveGraphReport(opts.SaveTo, report); err != nil {
			return err
		}
	}
	return solveErr
}

func printGraphReport(report app.GraphReport) {
	fmt.Printf("states: %d\n", report.StateCount)
	for _, edge := range report.Edges {
		fmt.Printf("%d -> %d\n", edge.From, edge.To)
		for _, c := range edge.Changes {
			fmt.Printf("  %s\n", c)
		}
		for _, n := range edge.Notes {
			fmt.Printf("  note: %s\n", n)
		}
	}
}

func loadGraphReport(path string) (app.GraphReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return app.GraphReport{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("no saved report at " + path).
			WithCause(err)
	}
	var report app.GraphReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return app.GraphReport{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse saved report: " + path).
			WithCause(err)
	}
	return report, nil
}

func saveGraphReport(path string, report app.GraphReport) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to render report").
			WithCause(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to save report to " + path).
			WithCause(err)
	}
	return nil
}
