package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"qtermzx/internal/config"
	"qtermzx/internal/logger"
)

// app carries what every subcommand needs once the root has loaded the
// config.
type app struct {
	configPath  string
	expand      bool
	stack       bool
	gadgetsOnly bool
	logLevel    string

	cfg      config.Config
	log      *zap.Logger
	closeLog func()
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "qzx",
		Short: "Pauli gadget circuits as ZX diagrams",
		Long: `qzx builds ZX diagrams from circuits of Pauli gadgets and Clifford gates.

Circuits are read in the line-oriented text format (qreg q[2]; gadget(pi/2) XZ;)
or as JSON, YAML or TOML documents, picked by file extension.

Examples:
  qzx stats circuit.qzx              # Count gates and diagram size
  qzx diagram circuit.qzx -o d.json  # Export the diagram for a renderer
  qzx conjugate ZZ pi/4 "h q[0]"     # Push H through a ZZ gadget
  qzx view circuit.qzx               # Edit the circuit interactively`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "YAML config file")
	flags.BoolVar(&a.expand, "expand", false, "draw gadgets as CNOT ladders")
	flags.BoolVar(&a.stack, "stack", true, "let gates on disjoint qubits share rows")
	flags.BoolVar(&a.gadgetsOnly, "gadgets-only", false, "draw CX and CZ as phase gadgets")
	flags.StringVar(&a.logLevel, "log-level", "", "override logging.level")

	root.AddCommand(
		a.statsCmd(),
		a.diagramCmd(),
		a.conjugateCmd(),
		a.applyCmd(),
		a.convertCmd(),
		a.viewCmd(),
	)
	return root
}

// setup loads the config, applies flags that were set explicitly and opens
// the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("expand") {
		cfg.Render.Expand = a.expand
	}
	if flags.Changed("stack") {
		cfg.Render.Stack = a.stack
	}
	if flags.Changed("gadgets-only") {
		cfg.Render.GadgetsOnly = a.gadgetsOnly
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}
	a.cfg = cfg

	// The TUI owns the terminal, so the viewer only logs to a file.
	if cmd.Name() == "view" && cfg.Logging.File == "" {
		a.log, a.closeLog = logger.Nop()
		return nil
	}
	a.log, a.closeLog, err = logger.New(cfg.Logging)
	return err
}

// run wraps a command body with start and finish logging.
func (a *app) run(body func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		defer a.closeLog()
		start := time.Now()
		a.log.Info("command started",
			zap.String("command", cmd.Name()),
			zap.Strings("args", args))

		if err := body(cmd, args); err != nil {
			a.log.Error("command failed",
				zap.String("command", cmd.Name()),
				zap.Error(err))
			return err
		}
		a.log.Info("command finished",
			zap.String("command", cmd.Name()),
			zap.Duration("elapsed", time.Since(start)))
		return nil
	}
}
