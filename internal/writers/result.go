package writers

import (
	"bufio"
	"encoding/json"
	"io"

	"razor/internal/jsonlutil"
	"razor/internal/output"
	"razor/internal/score"
)

func drainResults(ch <-chan score.Result) []score.Result {
	list := make([]score.Result, 0, 128)
	for r := range ch {
		list = append(list, r)
	}
	return list
}

func init() {
	// TSV table, streamed
	RegisterResult(output.FormatTSV, func(w io.Writer, args resultArgs) error {
		bw := bufio.NewWriterSize(w, 64<<10)
		if err := output.StreamTSV(bw, args.In, args.Header); err != nil {
			for range args.In {
			}
			return err
		}
		return bw.Flush()
	})

	// JSON array
	RegisterResult(output.FormatJSON, func(w io.Writer, args resultArgs) error {
		return output.WriteJSON(w, drainResults(args.In))
	})

	// JSONL streaming
	RegisterResult(output.FormatJSONL, func(w io.Writer, args resultArgs) error {
		pipe, done := StartResultJSONLWriter(w, 64)
		for r := range args.In {
			pipe <- r
		}
		close(pipe)
		return <-done
	})
}

// StartResultWriter spins up a writer goroutine for scored results. The
// caller sends every result, closes the channel and then reads the error.
func StartResultWriter(out io.Writer, format string, header bool, bufSize int) (chan<- score.Result, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan score.Result, bufSize)
	errCh := make(chan error, 1)
	go func() {
		errCh <- WriteResults(format, out, resultArgs{Header: header, In: in})
	}()
	return in, errCh
}

// StartResultJSONLWriter streams each Result as one JSON line (v1).
func StartResultJSONLWriter(out io.Writer, bufSize int) (chan<- score.Result, <-chan error) {
	return jsonlutil.Start[score.Result](out, bufSize,
		func(enc *json.Encoder, r score.Result) error {
			return enc.Encode(output.ToAPIResult(r))
		},
		IsBrokenPipe,
	)
}
