// Command spraytower evaluates spray-tower scrubber designs from TOML case
// files and xlsx workbooks.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"Spraytower/internal/calc/premium/batch"
	"Spraytower/internal/calc/premium/importer"
	"Spraytower/internal/calc/premium/optimize"
	"Spraytower/internal/calc/props"
	"Spraytower/internal/calc/report"
	"Spraytower/internal/calc/spraytower"
	"Spraytower/internal/calc/units"
	"Spraytower/internal/config"

	"github.com/BurntSushi/toml"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

// caseFile is the layout of a TOML case: the design input tables plus an
// optional [report] table.
type caseFile struct {
	spraytower.Input
	Report report.Meta `toml:"report"`
}

func readCase(path string) (caseFile, error) {
	var c caseFile
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return caseFile{}, fmt.Errorf("reading case %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		slog.Warn("unknown keys in case file", "file", path, "keys", strings.Join(keys, ", "))
	}
	if err := spraytower.Validate(c.Input); err != nil {
		return caseFile{}, fmt.Errorf("case %s: %w", path, err)
	}
	return c, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func create(path string, w io.Writer) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return w, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

type app struct {
	cfg      config.Config
	logLevel string
	units    string
	calc     *spraytower.Calculator
}

func (a *app) setup(*cobra.Command, []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(a.logLevel)); err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
	}
	if a.units != "" {
		sys, err := units.ParseSystem(strings.ToLower(a.units))
		if err != nil {
			return err
		}
		cfg.UnitSystem = sys
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      cfg.LogLevel,
		TimeFormat: "15:04:05",
	})))
	a.cfg = cfg
	a.calc = spraytower.New(props.Default()).WithDefaults(spraytower.Settings{
		UnitSystem: cfg.UnitSystem,
		Framework:  cfg.Framework,
	})
	return nil
}

func newRoot() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "spraytower",
		Short: "Size and check counter-current spray-tower gas scrubbers.",
		Long: `spraytower evaluates spray-tower absorber designs: tower sizing, droplet
dynamics, mass transfer, removal performance and regulatory compliance.
Settings are read from the environment (and a .env file); see the server
documentation for the variable names.`,
		SilenceUsage:      true,
		DisableAutoGenTag: true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.units, "units", "", "default unit system for cases that do not set one (metric, imperial)")

	root.AddCommand(a.evalCmd(), a.optimizeCmd(), a.reportCmd(), a.batchCmd())
	return root
}

func (a *app) evalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eval case.toml",
		Short: "Evaluate one design and print the result as JSON.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := readCase(args[0])
			if err != nil {
				return err
			}
			res, err := a.calc.Calculate(c.Input)
			if err != nil {
				return err
			}
			for _, w := range res.Warnings {
				slog.Warn(w)
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
		DisableAutoGenTag: true,
	}
}

func (a *app) optimizeCmd() *cobra.Command {
	var maxIter int
	cmd := &cobra.Command{
		Use:   "optimize case.toml",
		Short: "Search tower parameters until the design meets its emission limit.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := readCase(args[0])
			if err != nil {
				return err
			}
			if maxIter <= 0 {
				maxIter = a.cfg.MaxIterations
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			tr, err := optimize.New(a.calc, maxIter).Run(ctx, c.Input)
			if err != nil {
				return err
			}
			slog.Info("optimization finished", "outcome", tr.Outcome, "iterations", tr.Iterations)
			return writeJSON(cmd.OutOrStdout(), tr.Output())
		},
		DisableAutoGenTag: true,
	}
	cmd.Flags().IntVar(&maxIter, "max-iter", 0, "iteration budget (default from MAX_ITERATIONS)")
	return cmd
}

func (a *app) reportCmd() *cobra.Command {
	var out string
	var opt bool
	cmd := &cobra.Command{
		Use:   "report case.toml",
		Short: "Write a PDF datasheet for a design.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := readCase(args[0])
			if err != nil {
				return err
			}
			doc := report.Document{Meta: c.Report, Input: c.Input}
			if opt {
				tr, err := optimize.New(a.calc, a.cfg.MaxIterations).Run(cmd.Context(), c.Input)
				if err != nil {
					return err
				}
				doc.Input, doc.Result, doc.Log = tr.BestInput, tr.Best, tr.Log
			} else if doc.Result, err = a.calc.Calculate(c.Input); err != nil {
				return err
			}
			w, closeFn, err := create(out, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := report.Render(w, doc); err != nil {
				closeFn()
				return err
			}
			return closeFn()
		},
		DisableAutoGenTag: true,
	}
	cmd.Flags().StringVarP(&out, "output", "o", "spraytower.pdf", "output PDF path, - for stdout")
	cmd.Flags().BoolVar(&opt, "optimize", false, "optimize the design before printing")
	return cmd
}

func (a *app) batchCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "batch cases.xlsx",
		Short: "Evaluate every case row of a workbook and write a results workbook.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			cases, skipped, err := importer.ReadCases(f)
			if err != nil {
				return err
			}
			for _, s := range skipped {
				slog.Warn("skipped row", "row", s.Row, "err", s.Err)
			}
			res, err := batch.Calculate(a.calc, batch.Input{Items: cases})
			if err != nil {
				return err
			}
			slog.Info("batch finished", "cases", len(cases), "failed", res.Failed)
			w, closeFn, err := create(out, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := importer.WriteResults(w, cases, res); err != nil {
				closeFn()
				return err
			}
			return closeFn()
		},
		DisableAutoGenTag: true,
	}
	cmd.Flags().StringVarP(&out, "output", "o", "results.xlsx", "output workbook path, - for stdout")
	return cmd
}

func main() {
	if err := newRoot().ExecuteContext(context.Background()); err != nil {
		slog.Error("spraytower", "err", err)
		os.Exit(1)
	}
}
