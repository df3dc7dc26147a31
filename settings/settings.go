// Package settings loads the estatemap configuration file and manages
// the stored API token.
package settings

import (
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const DefaultPath = "estatemap.yaml"

// Path returns the config file location, honouring ESTATEMAP_CONFIG.
func Path() string {
	if p := os.Getenv("ESTATEMAP_CONFIG"); p != "" {
		return p
	}
	return DefaultPath
}

type Settings struct {
	API struct {
		BaseURL   string `yaml:"base_url"`
		UserAgent string `yaml:"user_agent"`
	} `yaml:"api"`
	Geocoding struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"geocoding"`
	Location struct {
		Enabled  bool   `yaml:"enabled"`
		Endpoint string `yaml:"endpoint"`
	} `yaml:"location"`
	Map struct {
		DefaultCity    string `yaml:"default_city"`
		MarkersPerPage int    `yaml:"markers_per_page"`
	} `yaml:"map"`
	TokenPath string `yaml:"token_path"`
	LogLevel  string `yaml:"log_level"`
}

func (s *Settings) Default() {
	s.API.BaseURL = "https://landsquire.in"
	s.API.UserAgent = "EstatemapClient/1.0 (terminal)"
	s.Geocoding.BaseURL = "https://maps.googleapis.com"
	s.Geocoding.APIKey = os.Getenv("GEOCODING_API_KEY")
	s.Location.Enabled = true
	s.Location.Endpoint = "http://ip-api.com/json"
	s.Map.DefaultCity = "Ajmer"
	s.Map.MarkersPerPage = 10
	s.TokenPath = ".estatemap-token"
	s.LogLevel = "error"
}

// Load reads the config file, filling any field it does not set with
// the default. A missing file is not an error; the defaults stand.
func Load(path string) (*Settings, error) {
	s := &Settings{}
	s.Default()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, errors.Wrap(err, "can't open config file")
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(s); err != nil {
		return nil, errors.Wrap(err, "can't parse config file")
	}
	return s, nil
}

func (s *Settings) SetLogLevel() {
	switch strings.ToLower(s.LogLevel) {
	case "debug":
		slog.SetLogLoggerLevel(slog.LevelDebug)
	case "info":
		slog.SetLogLoggerLevel(slog.LevelInfo)
	case "warn":
		slog.SetLogLoggerLevel(slog.LevelWarn)
	default:
		slog.SetLogLoggerLevel(slog.LevelError)
	}
}
