package profile

import (
	"context"
	"encoding/json"
)

// Document is the stored form of a LanguageProfile, compatible with the
// published langdetect profile files.
type Document struct {
	Name        string         `json:"name" yaml:"name"`
	NGramTotals []int          `json:"n_words" yaml:"n_words"`
	Frequencies map[string]int `json:"freq" yaml:"freq"`
}

// UnmarshalJSON also accepts "n_word_totals" in place of "n_words".
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name        string         `json:"name"`
		NWords      []int          `json:"n_words"`
		NWordTotals []int          `json:"n_word_totals"`
		Frequencies map[string]int `json:"freq"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.Name = raw.Name
	d.NGramTotals = raw.NWords
	if d.NGramTotals == nil {
		d.NGramTotals = raw.NWordTotals
	}
	d.Frequencies = raw.Frequencies
	return nil
}

// Store persists profile documents.
type Store interface {
	Save(ctx context.Context, doc Document) error
	// Load returns every stored document ordered by name.
	Load(ctx context.Context) ([]Document, error)
	Close() error
}

// LoadProfiles reads every document of a store and converts it.
func LoadProfiles(ctx context.Context, store Store) ([]*LanguageProfile, error) {
	docs, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	profiles := make([]*LanguageProfile, 0, len(docs))
	for _, doc := range docs {
		p, err := FromDocument(doc)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}
