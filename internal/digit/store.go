package digit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultTemplatesPath returns the per-user location of the trained
// templates. The directory is created by Save, not here.
func DefaultTemplatesPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine config directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}

	return filepath.Join(configDir, "sudoku-reader", "templates.json"), nil
}

// Save writes the template set to path as JSON.
func (ts *TemplateSet) Save(path string) error {
	data, err := json.MarshalIndent(ts, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot serialize templates: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("cannot create template directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("cannot write templates: %w", err)
	}
	return nil
}

// LoadTemplates reads a template set written by Save.
func LoadTemplates(path string) (*TemplateSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read templates: %w", err)
	}

	var ts TemplateSet
	if err := json.Unmarshal(data, &ts); err != nil {
		return nil, fmt.Errorf("cannot parse templates: %w", err)
	}
	if ts.Size != TemplateSize {
		return nil, fmt.Errorf("templates are %dx%d, want %dx%d", ts.Size, ts.Size, TemplateSize, TemplateSize)
	}
	for d, px := range ts.Pixels {
		if len(px) != TemplateSize*TemplateSize {
			return nil, fmt.Errorf("template %d has %d pixels, want %d", d, len(px), TemplateSize*TemplateSize)
		}
	}
	return &ts, nil
}
