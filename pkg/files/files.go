package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rhizome-dev/rhizome/pkg/models"
)

const (
	// AppDir is the directory under the user data dir holding the tree.
	AppDir = "rhizome"
	// DataFile is the tree document inside AppDir.
	DataFile = "policies.yaml"
	// FormatVersion is written into every saved document.
	FormatVersion = "1.0"
)

// Meta records document-level bookkeeping. CreatedAt is preserved
// across saves; LastModified is refreshed on every save.
type Meta struct {
	Version      string    `yaml:"version"`
	CreatedAt    time.Time `yaml:"created_at"`
	LastModified time.Time `yaml:"last_modified"`
}

// Document is the on-disk shape of a policy tree.
type Document struct {
	Meta   Meta            `yaml:"meta"`
	NextID models.NodeID   `yaml:"next_id"`
	Roots  []models.NodeID `yaml:"roots,flow"`
	Nodes  []models.Node   `yaml:"nodes"`
}

// DefaultPath resolves the data file location once at startup:
// $XDG_DATA_HOME/rhizome/policies.yaml, falling back to
// ~/.local/share/rhizome/policies.yaml. The directory is created if
// missing.
func DefaultPath() (string, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		base = filepath.Join(home, ".local", "share")
	}

	dir := filepath.Join(base, AppDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return filepath.Join(dir, DataFile), nil
}

// Load reads the tree document at path. A missing file is not an
// error: it yields an empty tree, so first runs start clean. A file
// that exists but cannot be parsed or fails structural validation is
// reported; the caller decides whether to fall back to an empty tree.
func Load(path string) (*models.Tree, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return models.NewTree(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc Document
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	tree, err := models.NewTreeFromData(models.TreeData{
		NextID: doc.NextID,
		Roots:  doc.Roots,
		Nodes:  doc.Nodes,
	})
	if err != nil {
		return nil, fmt.Errorf("invalid tree document %s: %w", path, err)
	}
	return tree, nil
}

// Save writes the tree document to path. The meta created_at of an
// existing document survives the rewrite; last_modified is set to now.
// On failure the in-memory tree is untouched and the caller may retry.
func Save(path string, tree *models.Tree) error {
	now := time.Now()
	meta := Meta{
		Version:      FormatVersion,
		CreatedAt:    now,
		LastModified: now,
	}
	if existing, err := os.ReadFile(path); err == nil {
		var prev Document
		if yaml.Unmarshal(existing, &prev) == nil && !prev.Meta.CreatedAt.IsZero() {
			meta.CreatedAt = prev.Meta.CreatedAt
		}
	}

	data := tree.Data()
	doc := Document{
		Meta:   meta,
		NextID: data.NextID,
		Roots:  data.Roots,
		Nodes:  data.Nodes,
	}

	content, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal tree document: %w", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
