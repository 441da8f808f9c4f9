// internal/sink/csv.go
package sink

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"inboxgen/internal/generator"
)

const dateLayout = "2006-01-02"

// FileSink persists batches as per-day per-entity CSV files in a single
// output directory. It is the generator's only I/O path, and the only place
// a genuine (environmental) fault can originate.
type FileSink struct {
	dir   string
	files []string
}

// NewFileSink creates the output directory up front so a bad destination
// aborts the run before any generation happens.
func NewFileSink(dir string) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", dir, err)
	}
	return &FileSink{dir: dir}, nil
}

func (s *FileSink) WriteBatch(b generator.Batch) error {
	name := fmt.Sprintf("%s_%s.csv", b.Entity, b.Date.Format(dateLayout))
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if b.IncludeHeader {
		if err := w.Write(b.Headers); err != nil {
			f.Close()
			return fmt.Errorf("write header to %s: %w", path, err)
		}
	}
	if err := w.WriteAll(b.Rows); err != nil {
		f.Close()
		return fmt.Errorf("write rows to %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	s.files = append(s.files, name)
	return nil
}

// Files returns the names of every file written, in write order.
func (s *FileSink) Files() []string {
	out := make([]string, len(s.files))
	copy(out, s.files)
	return out
}

// MemorySink collects batches in memory. Used by tests and dry runs.
type MemorySink struct {
	Batches []generator.Batch
}

func (m *MemorySink) WriteBatch(b generator.Batch) error {
	m.Batches = append(m.Batches, b)
	return nil
}
