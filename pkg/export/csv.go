package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/atotto/clipboard"

	"github.com/inventaworks/inventa/pkg/grid"
)

// CSV renders the table's filtered rows as csv text, header row first.
func CSV(t *grid.Table) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	cols := t.VisibleColumns()
	header := make([]string, len(cols))
	for i, col := range cols {
		header[i] = col.Label
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, row := range t.FilteredRows() {
		record := make([]string, len(cols))
		for i, col := range cols {
			record[i] = grid.Stringify(row[col.Field])
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteCSV writes the csv rendering to a file.
func WriteCSV(t *grid.Table, path string) error {
	data, err := CSV(t)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(data), 0o644)
}

// CopyCSV puts the csv rendering on the system clipboard.
func CopyCSV(t *grid.Table) error {
	data, err := CSV(t)
	if err != nil {
		return err
	}
	if err := clipboard.WriteAll(data); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	return nil
}
