package records

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-git/go-billy/v5"

	"newsmerge/models"
)

// Reader loads CSV record sets from a filesystem.
type Reader struct {
	fs billy.Filesystem
}

func NewReader(fs billy.Filesystem) *Reader {
	return &Reader{fs: fs}
}

// Read loads the record set stored at path. A missing file yields an empty
// set, not an error. Field names and values are returned exactly as stored,
// including any marker prefix on the first header cell.
func (r *Reader) Read(path string) (*models.Set, error) {
	file, err := r.fs.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &models.Set{}, nil
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // harvesters disagree on column counts

	header, err := reader.Read()
	if err == io.EOF {
		return &models.Set{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}

	set := &models.Set{Fields: header}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row of %s: %w", path, err)
		}
		record := models.Record{}
		for i, value := range row {
			if i < len(header) {
				record[header[i]] = value
			}
		}
		set.Records = append(set.Records, record)
	}

	return set, nil
}

// Exists reports whether a record set is present at path.
func Exists(fs billy.Filesystem, path string) bool {
	_, err := fs.Stat(path)
	return err == nil
}
