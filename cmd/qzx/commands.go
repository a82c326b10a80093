package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"qtermzx/builder"
	"qtermzx/circuit"
	"qtermzx/errors"
	"qtermzx/internal/viewer"
)

// stdio is the path that means stdin or stdout.
const stdio = "-"

func readCircuit(cmd *cobra.Command, path string) (circuit.Circuit, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == stdio {
		data, err = io.ReadAll(cmd.InOrStdin())
		path = ""
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return circuit.Circuit{}, errors.Wrapf(err, "read circuit %s", path)
	}

	c, err := circuit.Unmarshal(data, path)
	if err != nil {
		return circuit.Circuit{}, errors.Wrapf(err, "parse circuit %s", path)
	}
	return c, nil
}

func writeCircuit(cmd *cobra.Command, c circuit.Circuit, path string) error {
	if path == "" || path == stdio {
		_, err := io.WriteString(cmd.OutOrStdout(), circuit.FormatText(c))
		return err
	}
	data, err := circuit.Marshal(c, path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write circuit %s", path)
	}
	return nil
}

func inputArg(args []string) string {
	if len(args) == 0 {
		return stdio
	}
	return args[0]
}

func (a *app) builder() *builder.Builder {
	return builder.New(a.cfg.Render, a.log)
}

func (a *app) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [file]",
		Short: "Print gate counts and diagram size",
		Long: `Print the gate counts of a circuit and the size of its ZX diagram under
the current render options. Reads stdin when no file is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			c, err := readCircuit(cmd, inputArg(args))
			if err != nil {
				return err
			}
			d, err := a.builder().Circuit(c)
			if err != nil {
				return err
			}

			clifford := 0
			for _, g := range c.Gates {
				if g.IsClifford() {
					clifford++
				}
			}
			out := cmd.OutOrStdout()
			row := func(name string, n int) { fmt.Fprintf(out, "%-12s%d\n", name, n) }
			row("qubits", c.NumQubits)
			row("gates", len(c.Gates))
			row("gadgets", len(c.Gadgets()))
			row("clifford", clifford)
			row("simplified", len(c.Simplify().Gates))
			row("vertices", len(d.Vertices()))
			row("edges", len(d.Edges()))
			row("depth", d.Depth())
			return nil
		}),
	}
}

func (a *app) diagramCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "diagram [file]",
		Short: "Export the ZX diagram as JSON",
		Long: `Build the ZX diagram of a circuit and write it as JSON with its vertices,
edges and boundary rows.`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			c, err := readCircuit(cmd, inputArg(args))
			if err != nil {
				return err
			}
			d, err := a.builder().Circuit(c)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(d, "", "  ")
			if err != nil {
				return errors.Wrap(err, "encode diagram")
			}
			data = append(data, '\n')

			if output == "" || output == stdio {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return errors.Wrapf(err, "write diagram %s", output)
			}
			a.log.Info("wrote diagram",
				zap.String("path", output),
				zap.Int("vertices", len(d.Vertices())))
			return nil
		}),
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func (a *app) conjugateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "conjugate PAULIS ANGLE [GATE...]",
		Short: "Push Clifford gates through a gadget",
		Long: `Conjugate the gadget exp(-i ANGLE/2 PAULIS) through each Clifford gate in
turn and print the resulting gadget. Gates use the text format.

Examples:
  qzx conjugate ZZ pi/4 "h q[0]"
  qzx conjugate XX 0 "cx q[0], q[1]"`,
		Args: cobra.MinimumNArgs(2),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			angle, err := circuit.ParsePhase(args[1])
			if err != nil {
				return err
			}
			g, err := circuit.FromPauliString(args[0], angle/math.Pi)
			if err != nil {
				return err
			}
			through, err := circuit.ParseText(strings.Join(args[2:], "\n"))
			if err != nil {
				return err
			}

			moved, err := circuit.ConjugateAll(g, through.Gates...)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "gadget(%s) %s;\n",
				circuit.FormatPhase(moved.Phase()*math.Pi), moved.PauliString(len(args[0])))
			return nil
		}),
	}
}

func (a *app) applyCmd() *cobra.Command {
	var (
		gate     string
		from, to int
		output   string
	)
	cmd := &cobra.Command{
		Use:   "apply [file]",
		Short: "Push a Clifford through a block of rotations",
		Long: `Insert a Clifford before gates [from, to) and its inverse after them,
rewriting every rotation in the block so the circuit is unchanged.

Examples:
  qzx apply circuit.qzx --gate "h q[0]"
  qzx apply circuit.json --gate "cx q[0], q[1]" --from 1 --to 3 -o out.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			c, err := readCircuit(cmd, inputArg(args))
			if err != nil {
				return err
			}
			parsed, err := circuit.ParseText(gate)
			if err != nil {
				return err
			}
			if len(parsed.Gates) != 1 {
				return errors.WithHint(
					errors.Wrapf(circuit.ErrSyntax, "--gate %q", gate),
					`give exactly one gate, e.g. "h q[0]"`)
			}
			if to < 0 {
				to = len(c.Gates)
			}

			out, err := c.Apply(parsed.Gates[0], from, to)
			if err != nil {
				return err
			}
			a.log.Info("applied clifford",
				zap.Stringer("gate", parsed.Gates[0]),
				zap.Int("from", from),
				zap.Int("to", to))
			return writeCircuit(cmd, out, output)
		}),
	}
	cmd.Flags().StringVar(&gate, "gate", "", "Clifford gate in the text format")
	cmd.Flags().IntVar(&from, "from", 0, "first gate of the block")
	cmd.Flags().IntVar(&to, "to", -1, "end of the block, exclusive (default all gates)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	_ = cmd.MarkFlagRequired("gate")
	return cmd
}

func (a *app) convertCmd() *cobra.Command {
	var simplify bool
	cmd := &cobra.Command{
		Use:   "convert INPUT OUTPUT",
		Short: "Convert a circuit between formats",
		Long: `Convert a circuit between the text format and JSON, YAML or TOML
documents. Formats follow the file extensions; "-" is stdin or stdout.`,
		Args: cobra.ExactArgs(2),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			c, err := readCircuit(cmd, args[0])
			if err != nil {
				return err
			}
			if simplify {
				before := len(c.Gates)
				c = c.Simplify()
				a.log.Info("simplified circuit",
					zap.Int("before", before),
					zap.Int("after", len(c.Gates)))
			}
			return writeCircuit(cmd, c, args[1])
		}),
	}
	cmd.Flags().BoolVar(&simplify, "simplify", false, "fuse adjacent gates first")
	return cmd
}

func (a *app) viewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view [file]",
		Short: "Edit a circuit in the terminal",
		Long: `Open the interactive editor. A missing file starts an empty circuit of
viewer.qubits qubits that is saved to that path.`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			m, err := a.viewerModel(cmd, args)
			if err != nil {
				return err
			}
			return viewer.Run(m)
		}),
	}
}

func (a *app) viewerModel(cmd *cobra.Command, args []string) (viewer.Model, error) {
	savePath := a.cfg.Viewer.SavePath
	if len(args) > 0 {
		savePath = args[0]
	}

	c, err := circuit.New(a.cfg.Viewer.Qubits)
	if err != nil {
		return viewer.Model{}, err
	}
	if _, statErr := os.Stat(savePath); statErr == nil {
		if c, err = readCircuit(cmd, savePath); err != nil {
			return viewer.Model{}, err
		}
	}
	return viewer.New(c, a.cfg.Render, savePath, a.log), nil
}
