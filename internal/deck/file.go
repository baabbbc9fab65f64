package deck

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// File is the on-disk form of generated deck data: the content behind
// the rendered outputs, written alongside them so the deck can be
// re-rendered in another style later.
type File struct {
	Title  string  `json:"title"`
	Topic  string  `json:"topic,omitempty"`
	Slides []Slide `json:"slides"`
}

// Write saves the deck data as indented JSON, creating the directory
// if needed.
func (f *File) Write(path string) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal deck data: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadFile loads deck data saved by Write.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(f.Slides) == 0 {
		return nil, fmt.Errorf("%s has no slides", path)
	}
	return &f, nil
}
