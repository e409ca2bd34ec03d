// File path: internal/corpus/loader.go
package corpus

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/common"
)

// LoadDir reads the raw tables for every declared source from the data
// directory. A missing or empty primary table for a required source yields
// ErrDataLoad; missing supplementary tables are skipped silently.
func LoadDir(dir string) (map[Source]RawTables, error) {
	logger := common.Logger()
	out := make(map[Source]RawTables, len(Sources))
	for _, source := range Sources {
		spec := sourceSpecs[source]
		primaryPath := filepath.Join(dir, spec.Dir, spec.PrimaryFile)
		primary, err := readCSV(primaryPath)
		if err != nil {
			if spec.Required {
				return nil, fmt.Errorf("%w: %s: %v", ErrDataLoad, source, err)
			}
			logger.Warn("corpus: optional source unavailable", "source", source, "path", primaryPath, "error", err)
			continue
		}
		if primary.Empty() {
			if spec.Required {
				return nil, fmt.Errorf("%w: %s: no rows in %s", ErrDataLoad, source, spec.PrimaryFile)
			}
			continue
		}
		logger.Info("corpus: loaded primary table", "source", source, "rows", len(primary.Rows))

		tables := RawTables{Primary: primary}
		for _, name := range spec.SupplementFiles {
			path := filepath.Join(dir, spec.Dir, name)
			supplement, err := readCSV(path)
			if err != nil {
				logger.Debug("corpus: supplement unavailable", "source", source, "path", path, "error", err)
				continue
			}
			if supplement.Empty() {
				continue
			}
			logger.Info("corpus: loaded supplement table", "source", source, "file", name, "rows", len(supplement.Rows))
			tables.Supplements = append(tables.Supplements, supplement)
		}
		out[source] = tables
	}
	return out, nil
}

func readCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	if len(records) == 0 {
		return &Table{}, nil
	}
	return &Table{Columns: records[0], Rows: records[1:]}, nil
}
