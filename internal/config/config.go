// Package config is the run configuration of razor, unmarshalled from
// Viper (flags, RAZOR_* environment, optional config file, defaults).
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"razor/internal/cleavage"
	"razor/internal/output"
	"razor/internal/writers"
)

// Viper keys.
const (
	KeyFastaFile = "fastafile"
	KeyOutput    = "output"
	KeyFormat    = "format"
	KeyMaxScan   = "maxscan"
	KeyNCores    = "ncores"
	KeyModels    = "models"
	KeyFailFast  = "fail-fast"
	KeyQuiet     = "quiet"
	KeyVerbose   = "verbose"
)

// EnvPrefix prefixes every environment variable (RAZOR_MAXSCAN, ...).
const EnvPrefix = "RAZOR"

// DefaultMaxScan is the scan limit used when none is given.
const DefaultMaxScan = 80

// Config is the immutable run configuration handed to every component.
type Config struct {
	// path of the input FASTA ("-" for stdin)
	FastaFile string `mapstructure:"fastafile"`
	// output base name, or "-" for stdout
	Output string `mapstructure:"output"`
	// one of tsv, json, jsonl
	Format string `mapstructure:"format"`
	// number of N-terminal residues scanned for a cleavage site
	MaxScan int `mapstructure:"-"`
	// requested worker count
	Workers int `mapstructure:"ncores"`
	// model registry directory
	Models string `mapstructure:"models"`
	// abort the batch on the first failed sequence
	FailFast bool `mapstructure:"fail-fast"`
	Quiet    bool `mapstructure:"quiet"`
	Verbose  bool `mapstructure:"verbose"`

	// raw max_scan value as given (flag, env or file)
	maxScanRaw any
}

// ConfigurationError is a fatal problem with the run configuration.
type ConfigurationError struct {
	Key string
	Msg string
}

func (e *ConfigurationError) Error() string {
	if e.Key == "" {
		return "configuration: " + e.Msg
	}
	return fmt.Sprintf("configuration: %s: %s", e.Key, e.Msg)
}

// DefaultWorkers is half the hardware concurrency, at least 1.
func DefaultWorkers(numCPU int) int {
	if n := numCPU / 2; n > 1 {
		return n
	}
	return 1
}

// SetDefaults registers defaults and environment bindings on v.
func SetDefaults(v *viper.Viper, numCPU int) {
	v.SetDefault(KeyOutput, "result")
	v.SetDefault(KeyFormat, output.FormatTSV)
	v.SetDefault(KeyMaxScan, DefaultMaxScan)
	v.SetDefault(KeyNCores, DefaultWorkers(numCPU))
	v.SetDefault(KeyModels, "models")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv(KeyMaxScan, EnvPrefix+"_MAXSCAN", EnvPrefix+"_MAX_SCAN")
	_ = v.BindEnv(KeyNCores, EnvPrefix+"_NCORES", EnvPrefix+"_WORKERS")
}

// New decodes v into a Config. Values are not corrected yet (see Resolve).
func New(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, &ConfigurationError{Msg: fmt.Sprintf("unable to decode: %v", err)}
	}
	c.maxScanRaw = v.Get(KeyMaxScan)
	return c, nil
}

// Resolve applies corrections and checks. Warnings describe corrected values;
// an error is a ConfigurationError and is fatal.
func (c Config) Resolve(numCPU int) (Config, []string, error) {
	var warns []string

	ms, err := parseMaxScan(c.maxScanRaw)
	switch {
	case c.maxScanRaw == nil:
		ms = c.MaxScan
		if ms == 0 {
			ms = DefaultMaxScan
		}
	case err != nil:
		warns = append(warns, fmt.Sprintf("%v; using %d", err, cleavage.FallbackMaxScan))
		ms = cleavage.FallbackMaxScan
	}
	if ms < cleavage.MinMaxScan {
		warns = append(warns, fmt.Sprintf("max_scan=%d is below %d; using %d", ms, cleavage.MinMaxScan, cleavage.FallbackMaxScan))
		ms = cleavage.FallbackMaxScan
	}
	c.MaxScan = ms

	if c.Workers <= 0 {
		c.Workers = DefaultWorkers(numCPU)
	}
	if numCPU > 0 && c.Workers > numCPU {
		warns = append(warns, fmt.Sprintf("ncores=%d exceeds the %d available CPUs; using %d", c.Workers, numCPU, numCPU))
		c.Workers = numCPU
	}

	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	if c.Format == "" {
		c.Format = output.FormatTSV
	}
	if !writers.Known(c.Format) {
		return c, warns, &ConfigurationError{Key: KeyFormat, Msg: fmt.Sprintf("unknown format %q (want one of %s)", c.Format, strings.Join(writers.Formats(), ", "))}
	}

	if c.FastaFile == "" {
		return c, warns, &ConfigurationError{Key: KeyFastaFile, Msg: "an input FASTA file is required"}
	}
	if c.FastaFile != "-" {
		if _, err := os.Stat(c.FastaFile); err != nil {
			return c, warns, &ConfigurationError{Key: KeyFastaFile, Msg: fmt.Sprintf("cannot read input: %v", err)}
		}
	}
	if c.Output == "" {
		c.Output = "result"
	}
	if c.Quiet && c.Verbose {
		c.Verbose = false
	}
	return c, warns, nil
}

// WithMaxScan returns a copy of c with an explicit max_scan value, as if it
// had been given on the command line.
func (c Config) WithMaxScan(ms int) Config {
	c.maxScanRaw = ms
	return c
}

// parseMaxScan accepts integers, integral floats and decimal strings.
func parseMaxScan(raw any) (int, error) {
	bad := &ConfigurationError{Key: KeyMaxScan, Msg: fmt.Sprintf("%v is not an integer", raw)}
	switch x := raw.(type) {
	case int:
		return x, nil
	case int64:
		return int(x), nil
	case float64:
		if x != math.Trunc(x) || math.IsInf(x, 0) {
			return 0, bad
		}
		return int(x), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, bad
		}
		return n, nil
	case nil:
		return 0, nil
	}
	return 0, bad
}

// ToStdout reports whether results go to standard output.
func (c Config) ToStdout() bool { return c.Output == "-" }

// OutputPath is <dir(fastafile)>/<output><ext>; stdin input writes next to
// the working directory.
func (c Config) OutputPath() string {
	if c.ToStdout() {
		return "-"
	}
	dir := "."
	if c.FastaFile != "-" {
		dir = filepath.Dir(c.FastaFile)
	}
	return filepath.Join(dir, c.Output+output.Extension(c.Format))
}
