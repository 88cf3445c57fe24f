package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var logger = logrus.StandardLogger()

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// DirStore keeps one profile file per language in a directory.
type DirStore struct {
	dir    string
	format string
}

// NewDirStore creates the directory if needed. format selects the file type
// written by Save; Load reads both.
func NewDirStore(dir, format string) (*DirStore, error) {
	switch format {
	case "":
		format = FormatJSON
	case FormatJSON, FormatYAML:
	default:
		return nil, fmt.Errorf("unknown profile format: %s", format)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DirStore{dir: dir, format: format}, nil
}

func (s *DirStore) path(name string) string {
	return filepath.Join(s.dir, name+"."+s.format)
}

func (s *DirStore) Save(ctx context.Context, doc Document) error {
	if doc.Name == "" || strings.ContainsAny(doc.Name, `/\`) || strings.HasPrefix(doc.Name, ".") {
		return fmt.Errorf("invalid profile name: %q", doc.Name)
	}
	var (
		data []byte
		err  error
	)
	if s.format == FormatYAML {
		data, err = yaml.Marshal(doc)
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return err
	}
	path := s.path(doc.Name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		return err
	}
	logger.WithField("path", path).Debug("Saved language profile")
	return nil
}

func (s *DirStore) Load(ctx context.Context) ([]Document, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	docs := make([]Document, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".json" && ext != ".yaml" && ext != ".yml" {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		doc, err := readDocument(path, ext)
		if err != nil {
			return nil, fmt.Errorf("read profile %s: %w", path, err)
		}
		docs = append(docs, doc)
	}
	slices.SortStableFunc(docs, func(a, b Document) int {
		return strings.Compare(a.Name, b.Name)
	})
	return docs, nil
}

func (s *DirStore) Close() error {
	return nil
}

func readDocument(path, ext string) (Document, error) {
	var doc Document
	data, err := os.ReadFile(path)
	if err != nil {
		return doc, err
	}
	if ext == ".json" {
		err = json.Unmarshal(data, &doc)
	} else {
		err = yaml.Unmarshal(data, &doc)
	}
	return doc, err
}
