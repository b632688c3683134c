// Package txstream implements the transaction-block input model ReplayDriver
// consumes: a gzip line-delimited JSON stream of blocks, each
// carrying a slot triple and an ordered list of transactions.
package txstream

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// Instruction is one decoded-but-not-yet-typed instruction: a name and its
// JSON payload, handed to InstructionDecoder.Decode as-is.
type Instruction struct {
	Name        string `json:"name"`
	PayloadJSON string `json:"payload"`
}

// Transaction is one transaction within a block.
type Transaction struct {
	Signature    string        `json:"signature"`
	Payer        string        `json:"payer"`
	Instructions []Instruction `json:"instructions"`
}

// Block is one source block: a monotone slot triple plus its transactions,
// in the exact order the chain produced them.
type Block struct {
	Slot         uint64        `json:"slot"`
	BlockHeight  uint64        `json:"block_height"`
	BlockTime    int64         `json:"block_time"`
	Transactions []Transaction `json:"transactions"`
}

// Reader streams Blocks from a gzip-compressed line-delimited JSON file,
// one Block per Next call, in file order.
type Reader struct {
	gz     *gzip.Reader
	scan   *bufio.Scanner
	closer io.Closer
}

// NewReader wraps r as a line-delimited gzip Block stream.
func NewReader(r io.Reader) (*Reader, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("txstream: open gzip transaction stream: %w", err)
	}
	scan := bufio.NewScanner(gz)
	scan.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &Reader{gz: gz, scan: scan}, nil
}

// Next reads and decodes the next Block, returning io.EOF when the stream is
// exhausted.
func (r *Reader) Next() (Block, error) {
	if !r.scan.Scan() {
		if err := r.scan.Err(); err != nil {
			return Block{}, fmt.Errorf("txstream: read transaction stream: %w", err)
		}
		return Block{}, io.EOF
	}
	var b Block
	if err := json.Unmarshal(r.scan.Bytes(), &b); err != nil {
		return Block{}, fmt.Errorf("txstream: malformed block json: %w", err)
	}
	return b, nil
}

// Close releases the underlying gzip reader.
func (r *Reader) Close() error {
	return r.gz.Close()
}
