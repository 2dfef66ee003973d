// Package jsonlutil runs a JSON Lines encoder on its own goroutine.
package jsonlutil

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"
)

// Pooled 64 KiB buffers; the encoder is cheap and made per goroutine.
var bwPool = sync.Pool{
	New: func() any {
		return bufio.NewWriterSize(io.Discard, 64<<10)
	},
}

// Start spins up a goroutine that writes one JSON line per value received.
//   - wire: maps a domain value to its serialized form
//   - isBroken: recognizes a closed downstream; such errors are not reported
//
// After a write error the goroutine keeps draining in so senders never block.
// The error channel yields exactly one value once in is closed.
func Start[T, W any](out io.Writer, bufSize int, wire func(T) W, isBroken func(error) bool) (chan<- T, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan T, bufSize)
	done := make(chan error, 1)

	go func() {
		bw := bwPool.Get().(*bufio.Writer)
		bw.Reset(out)
		defer func() {
			bw.Reset(io.Discard)
			bwPool.Put(bw)
		}()

		enc := json.NewEncoder(bw)
		var err error
		for v := range in {
			if err != nil {
				continue
			}
			err = enc.Encode(wire(v))
		}
		if err == nil {
			err = bw.Flush()
		}
		if err != nil && isBroken != nil && isBroken(err) {
			err = nil
		}
		done <- err
	}()

	return in, done
}
