// Package store reads and appends line-delimited JSON question records.
package store

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Record is one line of a seed or output file.
type Record struct {
	Query string `json:"query"`
}

type rawRecord struct {
	Query *string `json:"query"`
}

const maxLineSize = 1 << 20

// ReadQuestions returns the query of every record in path, in file order.
func ReadQuestions(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	qs, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return qs, nil
}

// ReadQuestionsIfExists is ReadQuestions that treats a missing file as empty.
func ReadQuestionsIfExists(path string) ([]string, error) {
	qs, err := ReadQuestions(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return qs, err
}

func decode(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		var rec rawRecord
		if err := json.Unmarshal([]byte(text), &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if rec.Query == nil {
			return nil, fmt.Errorf("line %d: missing \"query\" field", line)
		}
		out = append(out, *rec.Query)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Appender adds records to the end of a file, one durable line per call.
type Appender struct {
	mu sync.Mutex
	f  *os.File
}

// OpenAppender opens path for appending, creating it if needed. Existing lines are never touched,
// but a final line cut short of its newline is terminated so new records start on their own line.
func OpenAppender(path string) (*Appender, error) {
	unterminated, err := endsWithoutNewline(path)
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	if unterminated {
		if _, err := f.Write([]byte{'\n'}); err != nil {
			f.Close()
			return nil, err
		}
	}
	return &Appender{f: f}, nil
}

func endsWithoutNewline(path string) (bool, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return false, err
	}
	if fi.Size() == 0 {
		return false, nil
	}
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, fi.Size()-1); err != nil {
		return false, err
	}
	return last[0] != '\n', nil
}

// Append writes {"query": question} followed by a newline and syncs it to disk.
func (a *Appender) Append(question string) error {
	b, err := json.Marshal(Record{Query: question})
	if err != nil {
		return err
	}
	b = append(b, '\n')

	a.mu.Lock()
	defer a.mu.Unlock()
	if _, err := a.f.Write(b); err != nil {
		return err
	}
	return a.f.Sync()
}

func (a *Appender) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.f.Close()
}
