// Package eventstream implements EventStreamWriter and its reader
// counterpart: gzip-compressed line-delimited JSON, one object
// per source block, flushed on every line.
package eventstream

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"

	"github.com/solana-zh/whirlpool-archive/pkg/event"
)

// TxEvents mirrors replay.TxEvents on the wire, with events left as raw JSON
// until Decode resolves each one by its "type" tag.
type TxEvents struct {
	Signature string            `json:"signature"`
	Payer     string            `json:"payer"`
	Events    []json.RawMessage `json:"events"`
}

// Block is one line of the event stream.
type Block struct {
	Slot         uint64     `json:"slot"`
	BlockHeight  uint64     `json:"block_height"`
	BlockTime    int64      `json:"block_time"`
	Transactions []TxEvents `json:"transactions"`
}

// DecodedTxEvents is Block's transaction with events resolved to concrete
// Event variants, for consumers that need typed access.
type DecodedTxEvents struct {
	Signature string
	Payer     string
	Events    []event.Event
}

// Decode resolves every event in tx by its "type" tag.
func (tx TxEvents) Decode() (DecodedTxEvents, error) {
	out := DecodedTxEvents{Signature: tx.Signature, Payer: tx.Payer}
	for _, raw := range tx.Events {
		ev, err := event.Decode(raw)
		if err != nil {
			return DecodedTxEvents{}, fmt.Errorf("eventstream: decode event in tx %s: %w", tx.Signature, err)
		}
		out.Events = append(out.Events, ev)
	}
	return out, nil
}

// Writer streams Blocks to an underlying writer as gzip line-delimited JSON,
// flushing after every line.
type Writer struct {
	gz  *gzip.Writer
	buf *bufio.Writer
}

// NewWriter wraps w as a Writer. Close must be called to flush the gzip
// trailer.
func NewWriter(w io.Writer) *Writer {
	gz := gzip.NewWriter(w)
	return &Writer{gz: gz, buf: bufio.NewWriter(gz)}
}

// WriteBlock serializes block (typically a replay.BlockEvents) as one JSON
// line and flushes immediately. Accepting any value rather than Block itself
// lets the writer side keep typed event.Event payloads while the reader side
// defers event decoding until Decode is called.
func (w *Writer) WriteBlock(block any) error {
	b, err := json.Marshal(block)
	if err != nil {
		return fmt.Errorf("eventstream: marshal block: %w", err)
	}
	if _, err := w.buf.Write(b); err != nil {
		return fmt.Errorf("eventstream: write block: %w", err)
	}
	if err := w.buf.WriteByte('\n'); err != nil {
		return fmt.Errorf("eventstream: write newline: %w", err)
	}
	if err := w.buf.Flush(); err != nil {
		return fmt.Errorf("eventstream: flush block: %w", err)
	}
	if err := w.gz.Flush(); err != nil {
		return fmt.Errorf("eventstream: flush gzip block: %w", err)
	}
	return nil
}

// Close flushes and closes the gzip stream.
func (w *Writer) Close() error {
	if err := w.buf.Flush(); err != nil {
		return fmt.Errorf("eventstream: final flush: %w", err)
	}
	return w.gz.Close()
}

// Reader streams Blocks from a gzip line-delimited JSON event stream.
type Reader struct {
	gz   *gzip.Reader
	scan *bufio.Scanner
}

// NewReader wraps r as a Block stream.
func NewReader(r io.Reader) (*Reader, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("eventstream: open gzip event stream: %w", err)
	}
	scan := bufio.NewScanner(gz)
	scan.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &Reader{gz: gz, scan: scan}, nil
}

// Next reads and decodes the next Block, returning io.EOF at end of stream.
func (r *Reader) Next() (Block, error) {
	if !r.scan.Scan() {
		if err := r.scan.Err(); err != nil {
			return Block{}, fmt.Errorf("eventstream: read event stream: %w", err)
		}
		return Block{}, io.EOF
	}
	var b Block
	if err := json.Unmarshal(r.scan.Bytes(), &b); err != nil {
		return Block{}, fmt.Errorf("eventstream: malformed block json: %w", err)
	}
	return b, nil
}

// Close releases the underlying gzip reader.
func (r *Reader) Close() error {
	return r.gz.Close()
}
