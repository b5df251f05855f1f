package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ifacegroup/fabricsync"
	"github.com/ifacegroup/fabricsync/internal/cmd/output"
	"github.com/ifacegroup/fabricsync/internal/controller"
	"github.com/ifacegroup/fabricsync/internal/rows"
	"github.com/ifacegroup/fabricsync/pkg/constants"
	"github.com/ifacegroup/fabricsync/pkg/errors"
	"github.com/ifacegroup/fabricsync/pkg/logging"
	"github.com/ifacegroup/fabricsync/pkg/reconcile"
	"github.com/ifacegroup/fabricsync/pkg/types"
)

var (
	compareInput    string
	compareMapping  string
	compareSwitches []string
	compareLagAuto  bool
	compareOffline  bool
)

// compareCmd reconciles input rows against live connectivity.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare cabling rows against live connectivity",
	Long: `Compare reads cabling rows from a CSV file, fetches connectivity
from the controller for the given blueprint, merges the two views, and
prints a per-connection report.

With --offline the controller is never contacted and the report covers
the input rows alone.`,
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
	addPassFlags(compareCmd)
}

// addPassFlags registers the flags shared by every command that runs
// the load-fetch-merge pipeline.
func addPassFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&compareInput, "input", "i", "", "cabling rows CSV file (required)")
	cmd.Flags().StringVar(&compareMapping, "mapping", "", "column mapping YAML file")
	cmd.Flags().StringSliceVar(&compareSwitches, "switches", nil, "restrict the fetch to these switch labels")
	cmd.Flags().BoolVar(&compareLagAuto, "lag-auto", true, "auto-assign link group names to unnamed LACP groups")
	cmd.Flags().BoolVar(&compareOffline, "offline", false, "skip the controller fetch")
	_ = cmd.MarkFlagRequired("input")
}

func runCompare(cmd *cobra.Command, _ []string) error {
	_, result, err := runPass(cmd.Context())
	if err != nil {
		return err
	}
	return writeResult(os.Stdout, result)
}

// runPass executes the shared load-fetch-merge pipeline used by the
// compare and provision commands, returning the engine alongside the
// result so callers can continue from the merged pass.
func runPass(ctx context.Context) (fabricsync.Fabricsync, *reconcile.Result, error) {
	engine, err := buildEngine(ctx)
	if err != nil {
		return nil, nil, err
	}
	input, err := loadRows()
	if err != nil {
		return nil, nil, err
	}
	engine.Normalize(flagBlueprint, input)

	if compareOffline {
		result, err := engine.Compare()
		return engine, result, err
	}
	ctx, cancel := context.WithTimeout(ctx, constants.FetchTimeout)
	defer cancel()
	result, err := engine.FetchAndCompare(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch and compare: %w", err)
	}
	return engine, result, nil
}

// buildEngine assembles the reconciliation engine, logging in to the
// controller unless the run is offline.
func buildEngine(ctx context.Context) (fabricsync.Fabricsync, error) {
	opts := []fabricsync.Option{
		fabricsync.WithLagAutoAssign(compareLagAuto),
		fabricsync.WithSwitchLabels(compareSwitches...),
	}

	if !compareOffline {
		url := controllerURL()
		if url == "" {
			return nil, &errors.ValidationError{
				Field:   "controller",
				Message: "controller URL is required unless --offline is set",
			}
		}
		if flagBlueprint == "" {
			return nil, &errors.ValidationError{
				Field:   "blueprint",
				Message: "blueprint is required unless --offline is set",
			}
		}
		username, password := credentials()
		client := controller.NewClient(url, flagInsecure)
		if err := client.Login(ctx, username, password); err != nil {
			return nil, fmt.Errorf("controller login: %w", err)
		}
		opts = append(opts, fabricsync.WithExecutor(client))
	}

	return fabricsync.New(opts...)
}

// loadRows reads the input CSV with the configured column mapping.
func loadRows() ([]types.NetworkRow, error) {
	mapping := rows.DefaultMapping()
	if compareMapping != "" {
		loaded, err := rows.LoadMapping(compareMapping)
		if err != nil {
			return nil, err
		}
		mapping = loaded
	}
	loaded, err := rows.ReadFile(compareInput, mapping)
	if err != nil {
		return nil, err
	}
	logging.Debug().Int("rows", len(loaded)).Str("file", compareInput).Msg("Loaded input rows")
	return loaded, nil
}

// compareReport is the serializable view of a result: the summary plus
// the per-entry reports in presentation order.
type compareReport struct {
	Summary types.Summary            `json:"summary" yaml:"summary"`
	Entries []*reconcile.EntryReport `json:"entries" yaml:"entries"`
}

func reportView(result *reconcile.Result) compareReport {
	view := compareReport{
		Summary: result.Summary(),
		Entries: make([]*reconcile.EntryReport, 0, len(result.Ordered)),
	}
	for _, entry := range result.Ordered {
		if report, ok := result.Report.Entries[entry.Key]; ok {
			view.Entries = append(view.Entries, report)
		}
	}
	return view
}

func writeResult(w *os.File, result *reconcile.Result) error {
	format, err := output.ParseFormat(flagOutput)
	if err != nil {
		return err
	}

	switch format {
	case output.FormatTable, output.FormatCSV:
		formatter := output.NewFormatter(output.FormatTable)
		if err := formatter.Format(w, output.EntryTable(result)); err != nil {
			return err
		}
		if flagQuiet {
			return nil
		}
		fmt.Fprintln(w)
		return formatter.Format(w, output.SummaryTable(result.Summary()))
	default:
		return output.NewFormatter(format).Format(w, reportView(result))
	}
}
