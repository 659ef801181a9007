// Package cards stores user-submitted flashcards in an append-only,
// newline-delimited JSON log.
package cards

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
)

// Log is an append-only card store. One line is one JSON-encoded card;
// cards are opaque and never validated, deduplicated or rewritten.
type Log struct {
	path string

	// Serializes appends so concurrent calls cannot interleave
	// partial lines within one file.
	mu sync.Mutex
}

// NewLog creates a Log over the given file path. The file is created
// lazily on the first append.
func NewLog(path string) *Log {
	return &Log{path: path}
}

// Append writes each card as one JSON line in input order and returns
// the number of cards written. Non-ASCII characters are written
// literally, not escaped.
func (l *Log) Append(cards []json.RawMessage) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	file, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, fmt.Errorf("open card log %s: %w", l.path, err)
	}
	defer func() { _ = file.Close() }()

	writer := bufio.NewWriter(file)
	encoder := json.NewEncoder(writer)
	encoder.SetEscapeHTML(false)
	for _, card := range cards {
		// Encode compacts the raw message and appends the newline.
		if err := encoder.Encode(card); err != nil {
			return 0, fmt.Errorf("encode card: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return 0, fmt.Errorf("flush card log %s: %w", l.path, err)
	}

	return len(cards), nil
}

// ReadAll returns every card in the log in append order. A log file
// that does not exist yet yields an empty slice, not an error.
func (l *Log) ReadAll() ([]json.RawMessage, error) {
	file, err := os.Open(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open card log %s: %w", l.path, err)
	}
	defer func() { _ = file.Close() }()

	cards := []json.RawMessage{}
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if !json.Valid(line) {
			return nil, fmt.Errorf("decode card log %s line %d: invalid JSON", l.path, lineNo)
		}
		cards = append(cards, json.RawMessage(bytes.Clone(line)))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read card log %s: %w", l.path, err)
	}

	return cards, nil
}
