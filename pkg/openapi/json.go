package openapi

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// MarshalJSON serializes the spec to indented JSON bytes.
func MarshalJSON(spec *Spec) ([]byte, error) {
	return json.MarshalIndent(spec, "", "  ")
}

// WriteJSON writes the indented spec to filename, creating parent
// directories as needed. The file ends with a newline.
func WriteJSON(spec *Spec, filename string) error {
	data, err := MarshalJSON(spec)
	if err != nil {
		return fmt.Errorf("marshal spec: %w", err)
	}

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create spec dir: %w", err)
		}
	}

	return os.WriteFile(filename, append(data, '\n'), 0o644)
}
