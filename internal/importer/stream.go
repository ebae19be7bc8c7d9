package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
)

type LineBatch struct {
	Records [][]string
	Skipped int
	Err     error
}

// stream reads the header synchronously and then sends the remaining lines in
// batches from a separate goroutine. The channel is closed after the last batch,
// after an error batch, or when ctx is done.
func (im *Importer) stream(ctx context.Context, r io.Reader) (*Parser, <-chan LineBatch, error) {
	reader := csv.NewReader(r)
	reader.Comma = im.comma
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	hs, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, ErrEmptyFile
		}
		return nil, nil, err
	}
	parser, err := NewParser(hs)
	if err != nil {
		return nil, nil, err
	}

	out := make(chan LineBatch)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				im.logger.ErrorContext(ctx, "panic recovered in stream", "panic", r)
			}
			close(out)
		}()

		batch := make([][]string, 0, im.batchSize)
		skipped := 0
		for {
			if ctx.Err() != nil {
				return
			}
			fields, err := reader.Read()
			if err != nil {
				if errors.Is(err, io.EOF) {
					if len(batch) > 0 || skipped > 0 {
						send(ctx, out, LineBatch{Records: batch, Skipped: skipped})
					}
					return
				}
				send(ctx, out, LineBatch{Err: err})
				return
			}

			record, ok := parser.parse(fields)
			if !ok {
				line, _ := reader.FieldPos(0)
				im.logger.WarnContext(ctx, "line does not match the header", "line", line, "errs", record)
				skipped++
				continue
			}

			batch = append(batch, record)
			if len(batch) == im.batchSize {
				if !send(ctx, out, LineBatch{Records: batch, Skipped: skipped}) {
					return
				}
				// a fresh slice, the sent one now belongs to the receiver
				batch = make([][]string, 0, im.batchSize)
				skipped = 0
			}
		}
	}()

	return parser, out, nil
}

func send(ctx context.Context, out chan<- LineBatch, b LineBatch) bool {
	select {
	case <-ctx.Done():
		return false
	case out <- b:
		return true
	}
}
