package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	"github.com/nspcc-dev/neo-txkit/pkg/encoding/address"
	"github.com/nspcc-dev/neo-txkit/pkg/encoding/fixedn"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is the default path to the config file.
	DefaultConfigPath = "./neo-txkit.yml"

	// DefaultEndpoint is the RPC node used if nothing else is configured.
	DefaultEndpoint = "http://localhost:20332"

	defaultTimeout                  = 4 * time.Second
	defaultNetworkFee               = 1000000
	defaultValidUntilBlockIncrement = 5760
)

// ErrInvalidConfig is returned for configurations that fail validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Version is the version of the toolkit, it's overridden at build time.
var Version = "dev"

// Config is the top level configuration structure.
type Config struct {
	ApplicationConfiguration ApplicationConfiguration `yaml:"ApplicationConfiguration"`
	RPC                      RPC                      `yaml:"RPC"`
	Transfer                 Transfer                 `yaml:"Transfer"`
}

// Default returns a configuration with all default values set.
func Default() Config {
	return Config{
		ApplicationConfiguration: ApplicationConfiguration{
			Logger: Logger{
				LogLevel:    "info",
				LogEncoding: "console",
			},
			AddressVersion: address.NEO3Prefix,
		},
		RPC: RPC{
			Endpoint:       DefaultEndpoint,
			DialTimeout:    defaultTimeout,
			RequestTimeout: defaultTimeout,
		},
		Transfer: Transfer{
			NetworkFee:               fixedn.Fixed8(defaultNetworkFee),
			ValidUntilBlockIncrement: defaultValidUntilBlockIncrement,
		},
	}
}

// Load attempts to load the config from the given path. An empty path
// returns the default configuration.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	configData, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("unable to read config: %w", err)
	}
	return LoadBytes(configData)
}

// LoadBytes parses YAML configuration, fills in defaults for the missing
// values and validates the result. Unknown fields are an error.
func LoadBytes(configData []byte) (Config, error) {
	config := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(configData))
	decoder.KnownFields(true)
	err := decoder.Decode(&config)
	if err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	err = config.Validate()
	if err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	if err := c.ApplicationConfiguration.Validate(); err != nil {
		return err
	}
	if err := c.RPC.Validate(); err != nil {
		return err
	}
	return c.Transfer.Validate()
}

// validateEndpoint checks that the endpoint is an absolute HTTP(S) URL.
func validateEndpoint(endpoint string) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("%w: RPC endpoint: %v", ErrInvalidConfig, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: RPC endpoint %q is not an HTTP URL", ErrInvalidConfig, endpoint)
	}
	return nil
}
