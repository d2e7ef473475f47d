package records

import (
	"encoding/csv"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-billy/v5"

	"newsmerge/models"
)

// Writer persists CSV record sets to a filesystem.
type Writer struct {
	fs billy.Filesystem
}

func NewWriter(fs billy.Filesystem) *Writer {
	return &Writer{fs: fs}
}

// Write persists the set to path using the given field schema, creating any
// missing parent directories and overwriting existing content. The header
// row is the schema; fields a record does not define are written as empty
// strings.
func (w *Writer) Write(path string, set *models.Set, fields []string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "/" {
		if err := w.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	file, err := w.fs.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(fields); err != nil {
		file.Close()
		return fmt.Errorf("write header of %s: %w", path, err)
	}

	row := make([]string, len(fields))
	for _, record := range set.Records {
		for i, field := range fields {
			row[i] = record[field]
		}
		if err := writer.Write(row); err != nil {
			file.Close()
			return fmt.Errorf("write row of %s: %w", path, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		file.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}

	return file.Close()
}
