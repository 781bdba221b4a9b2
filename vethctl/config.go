package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/canonical/vethctl/veth"
)

// defaultConfigPath is read when present and no other configuration file is given.
const defaultConfigPath = "/etc/vethctl/config.yaml"

const (
	backendIPRoute2 = "iproute2"
	backendNetlink  = "netlink"
)

// config is the vethctl configuration file.
type config struct {
	Backend string `yaml:"backend"`
	IPPath  string `yaml:"ip_path"`
	Timeout string `yaml:"timeout"`
	LogFile string `yaml:"log_file"`
}

func defaultConfig() *config {
	return &config{
		Backend: backendIPRoute2,
		IPPath:  veth.DefaultIPPath,
		Timeout: veth.IPCmdTimeout.String(),
	}
}

// loadConfig reads the configuration at path on top of the defaults.
// An empty path reads defaultConfigPath if it exists.
func loadConfig(path string) (*config, error) {
	conf := defaultConfig()

	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return conf, nil
		}

		return nil, fmt.Errorf("Failed to read configuration %q: %w", path, err)
	}

	err = yaml.UnmarshalStrict(content, conf)
	if err != nil {
		return nil, fmt.Errorf("Failed to parse configuration %q: %w", path, err)
	}

	return conf, nil
}

// Validate checks the configuration values.
func (c *config) Validate() error {
	switch c.Backend {
	case backendIPRoute2, backendNetlink:
	default:
		return fmt.Errorf("Invalid backend %q (must be %q or %q)", c.Backend, backendIPRoute2, backendNetlink)
	}

	if c.IPPath == "" {
		return fmt.Errorf("The ip command path cannot be empty")
	}

	timeout, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return fmt.Errorf("Invalid timeout %q: %w", c.Timeout, err)
	}

	if timeout <= 0 {
		return fmt.Errorf("Invalid timeout %q: must be positive", c.Timeout)
	}

	return nil
}

// timeout returns the parsed timeout, falling back to the default on a bad value.
func (c *config) timeout() time.Duration {
	timeout, err := time.ParseDuration(c.Timeout)
	if err != nil || timeout <= 0 {
		return veth.IPCmdTimeout
	}

	return timeout
}
