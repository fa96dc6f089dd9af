package export

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// decodeRecords streams every top-level JSON object in r to fn.
// Export files are usually a single array, but a bare stream of
// concatenated objects is accepted too; either way records are never
// buffered as a whole, since day and user files can be large.
func decodeRecords(r io.Reader, fn func(raw json.RawMessage) error) error {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return err
	}

	dec := json.NewDecoder(br)
	if first == '[' {
		if _, err := dec.Token(); err != nil {
			return fmt.Errorf("read array open: %w", err)
		}
		for dec.More() {
			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return fmt.Errorf("decode record: %w", err)
			}
			if err := fn(raw); err != nil {
				return err
			}
		}
		if _, err := dec.Token(); err != nil {
			return fmt.Errorf("read array close: %w", err)
		}
		return nil
	}

	for {
		var raw json.RawMessage
		err := dec.Decode(&raw)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("decode record: %w", err)
		}
		if err := fn(raw); err != nil {
			return err
		}
	}
}

// peekNonSpace returns the first byte of the stream that is not JSON
// whitespace, leaving it unread.
func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		default:
			return b, br.UnreadByte()
		}
	}
}
