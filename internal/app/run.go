package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"razor/internal/config"
	"razor/internal/fasta"
	"razor/internal/model"
	"razor/internal/pipeline"
	"razor/internal/progress"
	"razor/internal/score"
	"razor/internal/writers"
)

type loggers struct {
	info    *log.Logger
	warn    *log.Logger
	verbose bool
}

func newLoggers(stderr io.Writer, quiet, verbose bool) loggers {
	w := stderr
	if quiet {
		w = io.Discard
	}
	return loggers{
		info:    log.New(w, "INFO: ", 0),
		warn:    log.New(w, "WARN: ", 0),
		verbose: verbose,
	}
}

// run executes one batch: read, filter, score, write.
func run(ctx context.Context, c config.Config, numCPU int, stdout, stderr io.Writer, lg loggers) error {
	recs, err := fasta.ReadAll(ctx, c.FastaFile)
	if err != nil {
		return fmt.Errorf("read %s: %w", c.FastaFile, err)
	}
	kept, dropped := fasta.Filter(recs, c.MaxScan)
	if len(dropped) > 0 {
		lg.warn.Printf("%d sequences were removed due to inconsistencies in the provided file.", len(dropped))
		if lg.verbose {
			for _, d := range dropped {
				lg.warn.Println(d)
			}
		}
	}

	reg, err := model.Load(c.Models)
	if err != nil {
		return err
	}
	pred, err := score.NewPredictor(reg, c.MaxScan)
	if err != nil {
		return err
	}

	workers := pipeline.EffectiveWorkers(c.Workers, numCPU, len(kept))
	if workers > 1 {
		lg.info.Printf("Using %d parallel processes.", workers)
	}
	prog := progress.New(stderr, len(kept), workers > 1 && !c.Quiet)
	results, err := pipeline.Run(ctx, pipeline.Config{
		Workers:  c.Workers,
		NumCPU:   numCPU,
		FailFast: c.FailFast,
	}, kept, pred, prog)
	prog.Finish()
	if err != nil {
		return err
	}

	rows := report(results, lg)
	if err := write(c, rows, stdout); err != nil {
		return err
	}
	if !c.ToStdout() {
		lg.info.Printf("%d results written to %s", len(rows), c.OutputPath())
	}
	lg.info.Println("OK")
	return nil
}

// report logs failures and per-sequence warnings and returns the rows that
// belong in the table.
func report(results []score.Result, lg loggers) []score.Result {
	rows := make([]score.Result, 0, len(results))
	var failed, warned int
	for _, r := range results {
		if r.Failed() {
			failed++
			lg.warn.Printf("skipped: %v", r.Err)
			continue
		}
		if len(r.Warnings) > 0 {
			warned++
			if lg.verbose {
				for _, w := range r.Warnings {
					lg.warn.Printf("%s: %s", r.Accession, w)
				}
			}
		}
		rows = append(rows, r)
	}
	if warned > 0 && !lg.verbose {
		lg.warn.Printf("%d sequences produced scan warnings (use --verbose to list them)", warned)
	}
	if failed > 0 {
		lg.warn.Printf("%d sequences could not be scored", failed)
	}
	return rows
}

func write(c config.Config, rows []score.Result, stdout io.Writer) (err error) {
	var out io.Writer = stdout
	if !c.ToStdout() {
		fh, cerr := os.Create(c.OutputPath())
		if cerr != nil {
			return cerr
		}
		defer func() {
			if cerr := fh.Close(); err == nil {
				err = cerr
			}
		}()
		out = fh
	}

	bw := bufio.NewWriterSize(out, 64<<10)
	in, done := writers.StartResultWriter(bw, c.Format, true, 64)
	for _, r := range rows {
		in <- r
	}
	close(in)
	if werr := <-done; writers.IsBrokenPipe(werr) {
		return nil
	} else if werr != nil {
		return werr
	}
	if ferr := bw.Flush(); writers.IsBrokenPipe(ferr) {
		return nil
	} else if ferr != nil {
		return ferr
	}
	return nil
}
