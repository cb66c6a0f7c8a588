package infra

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PairingConfig matches the structure of secrets/pairing.yaml. The
// bridge token authorizes this console against the wallet bridge; it
// lives outside the main config file on purpose.
type PairingConfig struct {
	Bridge struct {
		Token string `yaml:"token"`
	} `yaml:"bridge"`
}

// LoadPairingConfig loads the bridge pairing token. The environment
// variable ORACLE_BRIDGE_TOKEN wins over the file; if neither is set
// the bridge is assumed to be unauthenticated (local development).
func LoadPairingConfig(path string) (*PairingConfig, error) {
	cfg := &PairingConfig{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read pairing config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse pairing config: %w", err)
		}
	}

	if tok := os.Getenv("ORACLE_BRIDGE_TOKEN"); tok != "" {
		cfg.Bridge.Token = tok
	}

	return cfg, nil
}
