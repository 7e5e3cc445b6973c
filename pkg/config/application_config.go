package config

import (
	"fmt"

	"github.com/nspcc-dev/neo-txkit/pkg/encoding/address"
	"go.uber.org/zap/zapcore"
)

// ApplicationConfiguration contains settings common to all commands.
type ApplicationConfiguration struct {
	Logger `yaml:",inline"`

	// AddressVersion is the version byte of addresses.
	AddressVersion byte `yaml:"AddressVersion"`
}

// Logger contains node logger configuration.
type Logger struct {
	LogEncoding string `yaml:"LogEncoding"`
	LogLevel    string `yaml:"LogLevel"`
	LogPath     string `yaml:"LogPath"`
}

// Validate returns an error if the application configuration is not valid.
func (a *ApplicationConfiguration) Validate() error {
	if a.LogEncoding != "" && a.LogEncoding != "console" && a.LogEncoding != "json" {
		return fmt.Errorf("%w: invalid LogEncoding %q", ErrInvalidConfig, a.LogEncoding)
	}
	if a.LogLevel != "" {
		if _, err := zapcore.ParseLevel(a.LogLevel); err != nil {
			return fmt.Errorf("%w: invalid LogLevel %q", ErrInvalidConfig, a.LogLevel)
		}
	}
	return nil
}

// GetAddressVersion returns the configured address version or the NEO3 one
// if it's not set.
func (a *ApplicationConfiguration) GetAddressVersion() byte {
	if a.AddressVersion == 0 {
		return address.NEO3Prefix
	}
	return a.AddressVersion
}
