package database

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/wingsengineering/wingsweb/models"
)

// FileCatalog serves parts from a JSON array on disk. The file is read on
// every fetch so edits show up on the next refresh.
type FileCatalog struct {
	Path string
}

func (s FileCatalog) Name() string { return "file" }

func (s FileCatalog) FetchParts(ctx context.Context) ([]models.Part, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var parts []models.Part
	if err := json.Unmarshal(raw, &parts); err != nil {
		return nil, fmt.Errorf("decode catalog file %s: %w", s.Path, err)
	}
	if parts == nil {
		parts = []models.Part{}
	}
	return parts, nil
}
