package repl

import (
	"bufio"
	"errors"
	"os"
	"strings"
	"sync"
)

const baseHistory = "history.utf8"

// ErrOutOfBounds is returned when a history index is out of range.
var ErrOutOfBounds = errors.New("history index out of bounds")

// History manages entered lines with file persistence.
type History struct {
	path    string
	entries []string
	mu      sync.RWMutex
}

// NewHistory creates a new History instance with the given file path.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Load reads history entries from the history file. A missing file is not
// an error.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	file, err := os.Open(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return err
	}
	defer file.Close()

	h.entries = nil

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		h.entries = append(h.entries, line)
	}

	return scanner.Err()
}

// Write appends a new entry to the history and persists it. Duplicates of
// the most recent entry and blank lines are dropped.
func (h *History) Write(entry string) (int, error) {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return 0, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.entries) > 0 && h.entries[len(h.entries)-1] == entry {
		return len(entry), nil
	}

	h.entries = append(h.entries, entry)

	file, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	return file.WriteString(entry + "\n")
}

// GetLine retrieves a historic line by index. Index 0 is the oldest entry.
func (h *History) GetLine(i int) (string, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return "", ErrOutOfBounds
	}

	return h.entries[i], nil
}

// Len returns the number of history entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}
