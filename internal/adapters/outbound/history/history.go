package history

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/locaudit/locaudit/internal/domain"
)

const historyFile = ".locaudit/history/audits.json"

// MaxRuns is the number of most recent runs kept on disk.
const MaxRuns = 200

// FileHistory implements domain.AuditHistory using JSON file storage.
type FileHistory struct{}

func New() *FileHistory {
	return &FileHistory{}
}

// Save appends run, dropping the oldest runs beyond MaxRuns.
func (h *FileHistory) Save(projectPath string, run domain.AuditRun) error {
	runs, err := h.Load(projectPath)
	if err != nil {
		return err
	}

	runs = append(runs, run)
	if len(runs) > MaxRuns {
		runs = runs[len(runs)-MaxRuns:]
	}

	fp := filepath.Join(projectPath, historyFile)
	if err := os.MkdirAll(filepath.Dir(fp), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(runs, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(fp, data, 0644)
}

// Load returns runs oldest first. A missing file is an empty history.
func (h *FileHistory) Load(projectPath string) ([]domain.AuditRun, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, historyFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var runs []domain.AuditRun
	if err := json.Unmarshal(data, &runs); err != nil {
		return nil, err
	}
	return runs, nil
}
