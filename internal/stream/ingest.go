package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/oneclickai/opsdeck/internal/domain/event"
)

const readBufferSize = 32 * 1024

// Summary describes how an ingested stream ended.
type Summary struct {
	Records  int  `json:"records"`
	Dropped  int  `json:"dropped"`
	Complete bool `json:"complete"` // an explicit complete record was seen
}

// HandlerFunc receives each decoded record in arrival order. Returning an
// error stops ingestion with that error.
type HandlerFunc func(event.Record) error

// Ingest reads r until it ends, handing every decoded record to fn. A clean
// end of stream returns a nil error whether or not a complete record was
// seen; Summary.Complete tells the two apart. A failed read returns an error
// wrapping ErrTransport, and cancellation returns ctx.Err().
func Ingest(ctx context.Context, r io.Reader, fn HandlerFunc, logger *slog.Logger) (Summary, error) {
	dec := NewDecoder(logger)
	var sum Summary

	deliver := func(recs []event.Record) error {
		for _, rec := range recs {
			sum.Records++
			if rec.Type == event.TypeComplete {
				sum.Complete = true
			}
			if err := fn(rec); err != nil {
				return err
			}
		}
		return nil
	}

	buf := make([]byte, readBufferSize)
	for {
		if err := ctx.Err(); err != nil {
			sum.Dropped = dec.Dropped()
			return sum, err
		}
		n, readErr := r.Read(buf)
		if n > 0 {
			if err := deliver(dec.Feed(buf[:n])); err != nil {
				sum.Dropped = dec.Dropped()
				return sum, err
			}
		}
		if readErr == nil {
			continue
		}
		if errors.Is(readErr, io.EOF) {
			err := deliver(dec.Flush())
			sum.Dropped = dec.Dropped()
			return sum, err
		}
		sum.Dropped = dec.Dropped()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return sum, ctxErr
		}
		return sum, fmt.Errorf("%w: %w", ErrTransport, readErr)
	}
}
