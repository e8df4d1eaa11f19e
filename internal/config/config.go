// Configuration for the driftpay command line tool is loaded from a yaml
// file, validated, and handed to the client library.
package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type (
	Application struct {
		API     APIConfig     `yaml:"api"`
		Logging LoggingConfig `yaml:"logging"`
	}

	APIConfig struct {
		Endpoint              string `yaml:"endpoint"`
		AccessToken           string `yaml:"access_token"`
		Version               string `yaml:"version"`
		RequestTimeoutSeconds int    `yaml:"request_timeout_seconds"`
	}

	LoggingConfig struct {
		Severity string `yaml:"severity"`
	}
)

// UnmarshalFromYamlConfiguration decodes a config in strict mode, so typos
// in field names are reported instead of silently ignored.
func UnmarshalFromYamlConfiguration(file io.Reader) (*Application, error) {
	d := yaml.NewDecoder(file)
	d.KnownFields(true)

	conf := &Application{}
	if err := d.Decode(conf); err != nil {
		return nil, err
	}

	return conf, nil
}

func LoadFile(path string) (*Application, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open configuration file: %w", err)
	}
	defer f.Close()

	return UnmarshalFromYamlConfiguration(f)
}
