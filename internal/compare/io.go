package compare

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteResultFile writes the comparison result as indented JSON, creating
// the parent directory if needed.
func WriteResultFile(r *Result, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create results dir: %w", err)
		}
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode comparison result: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write comparison result: %w", err)
	}
	return nil
}

// WriteSummaryFile writes the summary paragraph as plain text.
func WriteSummaryFile(summary, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create summary dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(summary+"\n"), 0644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}
