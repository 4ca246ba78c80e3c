package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"marine-nmea/internal/nmea"

	"gopkg.in/yaml.v3"
)

const (
	SourceFile   = "file"
	SourceStdin  = "stdin"
	SourceSerial = "serial"
	SourceReplay = "replay"

	FormatJSON = "json"
	FormatText = "text"

	// DefaultBaud is the NMEA 0183 standard line rate.
	DefaultBaud = 4800
)

type Config struct {
	Input         InputConfig  `yaml:"input"`
	Replay        ReplayConfig `yaml:"replay"`
	Record        RecordConfig `yaml:"record"`
	Output        OutputConfig `yaml:"output"`
	Decode        DecodeConfig `yaml:"decode"`
	CataloguePath string       `yaml:"catalogue_path"`
}

type InputConfig struct {
	Source string `yaml:"source"`
	Path   string `yaml:"path"`
	// Device is the serial port; empty means auto-detect.
	Device string `yaml:"device"`
	Baud   int    `yaml:"baud"`
}

type ReplayConfig struct {
	Speed float64 `yaml:"speed"`
	Loop  bool    `yaml:"loop"`
}

type RecordConfig struct {
	Enable bool   `yaml:"enable"`
	Path   string `yaml:"path"`
}

type OutputConfig struct {
	Format           string   `yaml:"format"`
	Tags             []string `yaml:"tags"`
	IncludeMalformed bool     `yaml:"include_malformed"`
}

type DecodeConfig struct {
	// Workers bounds batch decoding; 0 means GOMAXPROCS.
	Workers int `yaml:"workers"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	cfg := Config{}
	_ = cfg.Validate()
	return cfg
}

func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		var te *yaml.TypeError
		if errors.As(err, &te) {
			detail := typeErrorDetail(te)
			if strings.Contains(detail, "not found in type") {
				return Config{}, fmt.Errorf("config contains unknown fields: %s", detail)
			}
			return Config{}, fmt.Errorf("config: %s", detail)
		}
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// typeErrorDetail strips yaml's "line N: " prefixes.
func typeErrorDetail(te *yaml.TypeError) string {
	out := make([]string, 0, len(te.Errors))
	for _, e := range te.Errors {
		if _, rest, ok := strings.Cut(e, ": "); ok && strings.HasPrefix(e, "line ") {
			e = rest
		}
		out = append(out, e)
	}
	return strings.Join(out, "; ")
}

// Validate applies defaults in place and reports the first invalid setting.
// It is called by Load, and again by callers that override values from flags.
func (cfg *Config) Validate() error {
	if cfg.Input.Source == "" {
		if cfg.Input.Path != "" {
			cfg.Input.Source = SourceFile
		} else {
			cfg.Input.Source = SourceStdin
		}
	}
	switch cfg.Input.Source {
	case SourceFile, SourceReplay:
		if cfg.Input.Path == "" {
			return fmt.Errorf("input.path is required when input.source is '%s'", cfg.Input.Source)
		}
	case SourceStdin:
	case SourceSerial:
		if cfg.Input.Baud == 0 {
			cfg.Input.Baud = DefaultBaud
		}
	default:
		return fmt.Errorf("input.source must be one of file, stdin, serial, replay")
	}
	if cfg.Input.Baud < 0 {
		return fmt.Errorf("input.baud must be > 0")
	}

	if cfg.Replay.Speed == 0 {
		cfg.Replay.Speed = 1
	}
	if cfg.Replay.Speed < 0 {
		return fmt.Errorf("replay.speed must be > 0")
	}

	if cfg.Record.Enable {
		if cfg.Record.Path == "" {
			return fmt.Errorf("record.path is required when record.enable is true")
		}
		if cfg.Input.Source == SourceReplay {
			return fmt.Errorf("record cannot be used with input.source 'replay'")
		}
	}

	if cfg.Output.Format == "" {
		cfg.Output.Format = FormatJSON
	}
	if cfg.Output.Format != FormatJSON && cfg.Output.Format != FormatText {
		return fmt.Errorf("output.format must be 'json' or 'text'")
	}
	for i, tag := range cfg.Output.Tags {
		tag = strings.ToUpper(strings.TrimSpace(tag))
		if !nmea.KindOf(tag).Known() {
			return fmt.Errorf("output.tags: unknown message tag %q", cfg.Output.Tags[i])
		}
		cfg.Output.Tags[i] = tag
	}

	if cfg.Decode.Workers < 0 {
		return fmt.Errorf("decode.workers must be >= 0")
	}
	return nil
}

// TagFilter returns the set of kinds selected by output.tags, or nil when
// every kind is selected.
func (cfg Config) TagFilter() map[nmea.Kind]bool {
	if len(cfg.Output.Tags) == 0 {
		return nil
	}
	out := make(map[nmea.Kind]bool, len(cfg.Output.Tags))
	for _, tag := range cfg.Output.Tags {
		out[nmea.KindOf(tag)] = true
	}
	return out
}
