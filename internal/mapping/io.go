package mapping

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// LoadFile reads and decodes a theme mapping JSON file.
func LoadFile(path string) (Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme mapping: %w", err)
	}
	m, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// WriteFile writes the mapping as indented JSON, creating the parent
// directory if needed.
func WriteFile(m Mapping, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create mapping dir: %w", err)
		}
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode theme mapping: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write theme mapping: %w", err)
	}
	return nil
}

// LoadResponses reads a plain JSON array of response strings.
func LoadResponses(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read responses: %w", err)
	}
	var responses []string
	if err := json.Unmarshal(data, &responses); err != nil {
		return nil, fmt.Errorf("parse responses from %s: %w", path, err)
	}
	return responses, nil
}

// WriteResponses writes a JSON array of response strings, creating the
// parent directory if needed.
func WriteResponses(responses []string, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create responses dir: %w", err)
		}
	}
	data, err := json.MarshalIndent(responses, "", "  ")
	if err != nil {
		return fmt.Errorf("encode responses: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write responses: %w", err)
	}
	return nil
}
