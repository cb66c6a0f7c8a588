package infra

import (
	"os"
	"path/filepath"
	"testing"
)

func validYAML() string {
	return `
app:
  name: oracle-vision
  version: 1.0.0
network:
  rpc_url: https://bridge.example.com/rpc
  ws_url: wss://bridge.example.com/events
  chain_id: "0x1"
  chain_name: Ethereum Mainnet
contract:
  address: "0x1111111111111111111111111111111111111111"
  mint_method: mint(uint256)
  price_method: mintPrice()
  mint_quantity: 1
console:
  status_ring_size: 24
  receipt_poll_ms: 2000
logging:
  level: info
  format: text
`
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig_Valid(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validYAML()))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Network.ChainID != "0x1" {
		t.Errorf("chain id = %q", cfg.Network.ChainID)
	}
	if cfg.ContractAddress().Hex() != "0x1111111111111111111111111111111111111111" {
		t.Errorf("contract address = %s", cfg.ContractAddress().Hex())
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("ORACLE_RPC_URL", "https://other.example.com/rpc")
	t.Setenv("ORACLE_CHAIN_ID", "0x5")

	cfg, err := LoadConfig(writeConfig(t, validYAML()))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Network.RPCURL != "https://other.example.com/rpc" {
		t.Errorf("env override lost: %q", cfg.Network.RPCURL)
	}
	if cfg.Network.ChainID != "0x5" {
		t.Errorf("env override lost: %q", cfg.Network.ChainID)
	}
}

func TestConfig_Validate(t *testing.T) {
	base := func() *Config {
		cfg := DefaultConfig()
		cfg.Network.RPCURL = "https://bridge.example.com/rpc"
		cfg.Contract.Address = "0x1111111111111111111111111111111111111111"
		return cfg
	}

	if err := base().Validate(); err != nil {
		t.Fatalf("base config should validate: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad rpc url", func(c *Config) { c.Network.RPCURL = "ftp://x" }},
		{"bad ws url", func(c *Config) { c.Network.WSURL = "http://x" }},
		{"bad chain id", func(c *Config) { c.Network.ChainID = "1" }},
		{"bad contract", func(c *Config) { c.Contract.Address = "0x123" }},
		{"bad mint sig", func(c *Config) { c.Contract.MintMethod = "mint" }},
		{"bad mint args", func(c *Config) { c.Contract.MintMethod = "mint(address,uint256)" }},
		{"bad price sig", func(c *Config) { c.Contract.PriceMethod = "()" }},
		{"zero ring", func(c *Config) { c.Console.StatusRingSize = 0 }},
		{"zero poll", func(c *Config) { c.Console.ReceiptPollMS = 0 }},
	}

	for _, c := range cases {
		cfg := base()
		c.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", c.name)
		}
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadPairingConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pairing.yaml")
	if err := os.WriteFile(path, []byte("bridge:\n  token: file-token\n"), 0600); err != nil {
		t.Fatalf("write pairing: %v", err)
	}

	cfg, err := LoadPairingConfig(path)
	if err != nil {
		t.Fatalf("LoadPairingConfig failed: %v", err)
	}
	if cfg.Bridge.Token != "file-token" {
		t.Errorf("token = %q", cfg.Bridge.Token)
	}

	t.Setenv("ORACLE_BRIDGE_TOKEN", "env-token")
	cfg, err = LoadPairingConfig(path)
	if err != nil {
		t.Fatalf("LoadPairingConfig failed: %v", err)
	}
	if cfg.Bridge.Token != "env-token" {
		t.Error("env token should win over file")
	}

	// Missing file is not an error: local bridges run unauthenticated.
	cfg, err = LoadPairingConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing pairing file should not fail: %v", err)
	}
	if cfg.Bridge.Token != "env-token" {
		t.Error("env token should still apply without a file")
	}
}
