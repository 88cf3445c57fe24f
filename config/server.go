package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Envelope struct {
	Server   Server   `yaml:"server"`
	Profiles Profiles `yaml:"profiles"`
	Detector Detector `yaml:"detector"`
}

type Server struct {
	Address string   `yaml:"address"`
	Tokens  []string `yaml:"tokens"`
}

// Profiles selects where language profiles are loaded from. Database wins
// over Dir when both are set.
type Profiles struct {
	Dir      string `yaml:"dir"`
	Database string `yaml:"database"`
	Format   string `yaml:"format"`
}

type Detector struct {
	Alpha         float64            `yaml:"alpha"`
	MaxTextLength int                `yaml:"max_text_length"`
	Prior         map[string]float64 `yaml:"prior"`
	Verbose       bool               `yaml:"verbose"`
}

// LoadConfigFromFile parses a YAML configuration file. An empty path yields
// an empty envelope.
func LoadConfigFromFile(path string) (*Envelope, error) {
	envelope := &Envelope{}
	if path == "" {
		return envelope, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, envelope); err != nil {
		return nil, err
	}
	return envelope, nil
}
