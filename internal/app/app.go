// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"razor/internal/config"
	"razor/internal/output"
	"razor/internal/version"
)

// Exit codes.
const (
	ExitOK        = 0
	ExitUsage     = 2
	ExitRuntime   = 3
	ExitCancelled = 130
)

// usageError marks bad flags or arguments.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// NewRootCommand builds the razor command. Flags are bound to v.
func NewRootCommand(ctx context.Context, v *viper.Viper, stdout, stderr io.Writer) *cobra.Command {
	var cfgFile string
	numCPU := runtime.NumCPU()

	cmd := &cobra.Command{
		Use:   "razor",
		Short: "Predict signal peptides and their cleavage sites in protein sequences",
		Long: `Score every protein of a FASTA file for an N-terminal signal peptide,
locate the most probable cleavage site within the first max_scan residues
and flag likely fungal and toxic signal peptides.

Results are written to <dir(fastafile)>/<output>.csv (tab-separated),
.json or .jsonl; use "--output -" for standard output.`,
		Version:       version.Version,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				return &usageError{err: fmt.Errorf("unexpected argument %q (the input goes in --fastafile)", args[0])}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfgFile != "" {
				v.SetConfigFile(cfgFile)
				if err := v.ReadInConfig(); err != nil {
					return &config.ConfigurationError{Key: "config", Msg: err.Error()}
				}
			}
			c, err := config.New(v)
			if err != nil {
				return err
			}
			c, warns, err := c.Resolve(numCPU)
			lg := newLoggers(stderr, c.Quiet, c.Verbose)
			for _, w := range warns {
				lg.warn.Println(w)
			}
			if err != nil {
				return err
			}
			return run(ctx, c, numCPU, stdout, stderr, lg)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	config.SetDefaults(v, numCPU)

	f := cmd.Flags()
	f.StringP(config.KeyFastaFile, "f", "", "input FASTA file (gzip ok, \"-\" for stdin)")
	f.StringP(config.KeyOutput, "o", "result", "output file base name, \"-\" for stdout")
	f.IntP(config.KeyMaxScan, "m", config.DefaultMaxScan, "scan the first max_scan residues for a cleavage site (>=16)")
	f.IntP(config.KeyNCores, "n", config.DefaultWorkers(numCPU), "number of parallel workers")
	f.String(config.KeyModels, "models", "model registry directory")
	f.String(config.KeyFormat, output.FormatTSV, "output format: tsv, json or jsonl")
	f.Bool(config.KeyFailFast, false, "abort on the first sequence that cannot be scored")
	f.BoolP(config.KeyQuiet, "q", false, "suppress informational messages and warnings")
	f.Bool(config.KeyVerbose, false, "report every per-sequence warning")
	f.StringVar(&cfgFile, "config", "", "read settings from this file (yaml, toml, json, ...)")

	for _, key := range []string{
		config.KeyFastaFile, config.KeyOutput, config.KeyMaxScan, config.KeyNCores,
		config.KeyModels, config.KeyFormat, config.KeyFailFast, config.KeyQuiet, config.KeyVerbose,
	} {
		_ = v.BindPFlag(key, f.Lookup(key))
	}
	return cmd
}

// RunContext parses argv, runs razor and returns the process exit code.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand(ctx, viper.New(), stdout, stderr)
	if len(argv) == 0 {
		argv = []string{"--help"}
	}
	cmd.SetArgs(argv)
	err := cmd.Execute()
	if err == nil {
		return ExitOK
	}

	code := ExitCode(err)
	if code == ExitCancelled {
		return code
	}
	fmt.Fprintln(stderr, "error:", err)
	if code == ExitUsage {
		var ue *usageError
		if errors.As(err, &ue) {
			fmt.Fprintln(stderr, "Run 'razor --help' for usage.")
		}
	}
	return code
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// ExitCode maps an error to razor's exit code convention.
func ExitCode(err error) int {
	var (
		ue *usageError
		ce *config.ConfigurationError
	)
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitCancelled
	case errors.As(err, &ue), errors.As(err, &ce):
		return ExitUsage
	default:
		return ExitRuntime
	}
}
