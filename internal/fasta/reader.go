// Package fasta reads protein FASTA input and filters it into the
// (accession, sequence) batch the scoring core consumes.
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	"razor/internal/gzio"
)

// Record is one (accession, sequence) pair. Accession is the whole header
// line without the leading '>'.
type Record struct {
	ID  string
	Seq string
}

// StreamPathCtx opens path ("-" for stdin, gzip detected) and calls emit for
// every record in file order. Cancellation via ctx is checked between lines.
func StreamPathCtx(ctx context.Context, path string, emit func(Record) error) error {
	rc, err := gzio.Open(path)
	if err != nil {
		return err
	}
	defer rc.Close()
	return Stream(ctx, rc, emit)
}

// Stream scans FASTA text from r.
func Stream(ctx context.Context, r io.Reader, emit func(Record) error) error {
	sc := bufio.NewScanner(r)
	const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences (64 MiB)
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var (
		id    string
		inRec bool
		seq   = make([]byte, 0, 1024)
	)
	flush := func() error {
		if !inRec {
			return nil
		}
		return emit(Record{ID: id, Seq: string(seq)})
	}

	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				return err
			}
			id = string(bytes.TrimSpace(line[1:]))
			seq = seq[:0]
			inRec = true
			continue
		}
		if !inRec {
			return &IngestError{Accession: "", Reason: fmt.Sprintf("sequence data before the first header: %.20q", line)}
		}
		seq = append(seq, line...)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("fasta scan: %w", err)
	}
	return flush()
}

// ReadAll collects every record of path.
func ReadAll(ctx context.Context, path string) ([]Record, error) {
	var out []Record
	err := StreamPathCtx(ctx, path, func(r Record) error {
		out = append(out, r)
		return nil
	})
	return out, err
}
