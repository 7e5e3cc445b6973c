package config

import (
	"fmt"
	"time"
)

// RPC is the configuration of the RPC node connection.
type RPC struct {
	Endpoint       string        `yaml:"Endpoint"`
	DialTimeout    time.Duration `yaml:"DialTimeout"`
	RequestTimeout time.Duration `yaml:"RequestTimeout"`
}

// Validate returns an error if the endpoint is not an HTTP URL or timeouts
// are negative.
func (r *RPC) Validate() error {
	if err := validateEndpoint(r.Endpoint); err != nil {
		return err
	}
	if r.DialTimeout < 0 || r.RequestTimeout < 0 {
		return fmt.Errorf("%w: negative RPC timeout", ErrInvalidConfig)
	}
	return nil
}
