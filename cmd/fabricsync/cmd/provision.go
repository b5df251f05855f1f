package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ifacegroup/fabricsync/internal/cmd/output"
	"github.com/ifacegroup/fabricsync/pkg/errors"
	"github.com/ifacegroup/fabricsync/pkg/logging"
	"github.com/ifacegroup/fabricsync/pkg/types"
)

var (
	provisionAll  bool
	provisionKeys []string
	provisionOut  string
)

// provisionCmd emits merged rows for submission to downstream tooling.
var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Emit merged cabling rows for provisioning",
	Long: `Provision runs the same pipeline as compare, then flattens the
selected connections back into cabling rows with input values taking
precedence over fetched ones.

Connections are selected with repeated --key flags using the form
switch:interface<->server, or all at once with --all.`,
	RunE: runProvision,
}

func init() {
	rootCmd.AddCommand(provisionCmd)
	addPassFlags(provisionCmd)

	provisionCmd.Flags().BoolVar(&provisionAll, "all", false, "select every connection")
	provisionCmd.Flags().StringArrayVar(&provisionKeys, "key", nil, "select a connection by key (switch:interface<->server)")
	provisionCmd.Flags().StringVar(&provisionOut, "out", "", "write rows to this file instead of stdout")
}

func runProvision(cmd *cobra.Command, _ []string) error {
	if !provisionAll && len(provisionKeys) == 0 {
		return &errors.ValidationError{
			Field:   "key",
			Message: "select connections with --key or --all",
		}
	}

	engine, _, err := runPass(cmd.Context())
	if err != nil {
		return err
	}

	selected, err := selection()
	if err != nil {
		return err
	}
	flat, err := engine.Provision(selected)
	if err != nil {
		return err
	}
	logging.Info().Int("rows", len(flat)).Msg("Prepared provisioning rows")

	w := os.Stdout
	if provisionOut != "" {
		f, err := os.Create(provisionOut)
		if err != nil {
			return errors.WrapIO("create", provisionOut, err)
		}
		defer f.Close()
		w = f
	}
	return writeRows(w, flat)
}

// selection builds the key set for Provision, nil meaning every entry.
func selection() (map[types.ConnectionKey]bool, error) {
	if provisionAll {
		return nil, nil
	}
	selected := make(map[types.ConnectionKey]bool, len(provisionKeys))
	for _, raw := range provisionKeys {
		key, err := parseKey(raw)
		if err != nil {
			return nil, err
		}
		selected[key] = true
	}
	return selected, nil
}

// parseKey parses the switch:interface<->server form printed in reports.
func parseKey(raw string) (types.ConnectionKey, error) {
	local, server, ok := strings.Cut(raw, "<->")
	if !ok {
		return types.ConnectionKey{}, errors.NewValidationError("key", raw, "expected switch:interface<->server")
	}
	switchLabel, iface, ok := strings.Cut(local, ":")
	if !ok {
		return types.ConnectionKey{}, errors.NewValidationError("key", raw, "expected switch:interface<->server")
	}
	return types.NewConnectionKey(switchLabel, server, iface), nil
}

func writeRows(w *os.File, flat []types.NetworkRow) error {
	format, err := output.ParseFormat(flagOutput)
	if err != nil {
		return err
	}
	switch format {
	case output.FormatJSON, output.FormatYAML:
		return output.NewFormatter(format).Format(w, flat)
	default:
		return output.WriteRowsCSV(w, flat)
	}
}
