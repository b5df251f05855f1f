package fabricsync

import (
	"github.com/rs/zerolog"

	"github.com/ifacegroup/fabricsync/pkg/errors"
	"github.com/ifacegroup/fabricsync/pkg/logging"
	"github.com/ifacegroup/fabricsync/pkg/reconcile"
)

// config holds the assembled options for a Fabricsync instance.
type config struct {
	executor        reconcile.QueryExecutor
	switchLabels    []string
	assignLagGroups bool
	logger          *zerolog.Logger
}

// defaultConfig returns the baseline configuration.
func defaultConfig() *config {
	return &config{
		assignLagGroups: true,
		logger:          logging.Default(),
	}
}

// Option configures a Fabricsync instance.
type Option func(*config) error

// WithExecutor sets the remote query executor used by FetchAndCompare.
func WithExecutor(executor reconcile.QueryExecutor) Option {
	return func(c *config) error {
		if executor == nil {
			return errors.New("executor cannot be nil")
		}
		c.executor = executor
		return nil
	}
}

// WithSwitchLabels restricts remote queries to a fixed switch-label set
// instead of deriving the set from the pass's entries.
func WithSwitchLabels(labels ...string) Option {
	return func(c *config) error {
		c.switchLabels = labels
		return nil
	}
}

// WithLagAutoAssign toggles automatic link-group naming for LACP-active
// entries after a merge. Enabled by default.
func WithLagAutoAssign(enabled bool) Option {
	return func(c *config) error {
		c.assignLagGroups = enabled
		return nil
	}
}

// WithLogger sets the logger used for pass lifecycle events.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		c.logger = logger
		return nil
	}
}
