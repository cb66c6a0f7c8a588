package infra

import (
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v3"
)

// Config holds every knob of the mint console. Loaded from yaml, then
// overridden by environment variables (env wins, secrets never belong in
// the config file).
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Network struct {
		// RPCURL is the HTTP JSON-RPC endpoint of the wallet bridge.
		RPCURL string `yaml:"rpc_url"`
		// WSURL is the websocket endpoint for pushed account/chain
		// change notifications. Optional; empty disables push events.
		WSURL string `yaml:"ws_url"`
		// ChainID is the single supported chain, 0x-prefixed hex.
		ChainID string `yaml:"chain_id"`
		// ChainName is only used in status messages.
		ChainName string `yaml:"chain_name"`
	} `yaml:"network"`

	Contract struct {
		// Address of the NFT collection contract.
		Address string `yaml:"address"`
		// MintMethod is the one payable method signature to call.
		// Supported shapes: "mint()" or "mint(uint256)".
		MintMethod string `yaml:"mint_method"`
		// PriceMethod is the read-only price getter signature.
		PriceMethod string `yaml:"price_method"`
		// MintQuantity is the uint256 argument for single-arg mint
		// methods. Ignored for zero-arg signatures.
		MintQuantity uint64 `yaml:"mint_quantity"`
	} `yaml:"contract"`

	Console struct {
		// StatusRingSize bounds the status feed (20-30 is sensible).
		StatusRingSize int `yaml:"status_ring_size"`
		// ReceiptPollMS is the base interval for receipt polling.
		ReceiptPollMS int `yaml:"receipt_poll_ms"`
	} `yaml:"console"`

	Logging struct {
		Level  string `yaml:"level"`  // debug, info, warn, error
		Format string `yaml:"format"` // text, json
	} `yaml:"logging"`
}

// DefaultConfig returns a config usable without any file on disk.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.App.Name = "oracle-vision"
	cfg.App.Version = "dev"
	cfg.Network.ChainID = "0x1"
	cfg.Network.ChainName = "Ethereum Mainnet"
	cfg.Contract.MintMethod = "mint(uint256)"
	cfg.Contract.PriceMethod = "mintPrice()"
	cfg.Contract.MintQuantity = 1
	cfg.Console.StatusRingSize = 24
	cfg.Console.ReceiptPollMS = 2000
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "text"
	return cfg
}

// LoadConfig reads and parses the yaml config at path, applies env
// overrides and validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	overrideWithEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks configuration validity. Fail fast: a bad contract
// address or chain ID must never reach the provider layer.
func (c *Config) Validate() error {
	if c.Network.RPCURL == "" || (!hasPrefix(c.Network.RPCURL, "http://") && !hasPrefix(c.Network.RPCURL, "https://")) {
		return fmt.Errorf("invalid RPC URL: %s", c.Network.RPCURL)
	}
	if c.Network.WSURL != "" && !hasPrefix(c.Network.WSURL, "ws://") && !hasPrefix(c.Network.WSURL, "wss://") {
		return fmt.Errorf("invalid WS URL: %s", c.Network.WSURL)
	}
	if !isHexQuantity(c.Network.ChainID) {
		return fmt.Errorf("invalid chain ID: %s", c.Network.ChainID)
	}
	if !common.IsHexAddress(c.Contract.Address) {
		return fmt.Errorf("invalid contract address: %s", c.Contract.Address)
	}
	if err := validateMethodSig(c.Contract.MintMethod); err != nil {
		return fmt.Errorf("mint method: %w", err)
	}
	if err := validateMethodSig(c.Contract.PriceMethod); err != nil {
		return fmt.Errorf("price method: %w", err)
	}
	if c.Console.StatusRingSize <= 0 {
		return fmt.Errorf("status ring size must be positive")
	}
	if c.Console.ReceiptPollMS <= 0 {
		return fmt.Errorf("receipt poll interval must be positive")
	}
	return nil
}

// ContractAddress returns the parsed contract address. Call after Validate.
func (c *Config) ContractAddress() common.Address {
	return common.HexToAddress(c.Contract.Address)
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[0:len(prefix)] == prefix
}

func isHexQuantity(s string) bool {
	if !strings.HasPrefix(s, "0x") || len(s) < 3 {
		return false
	}
	for _, ch := range s[2:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", ch) {
			return false
		}
	}
	return true
}

// validateMethodSig accepts "name()" or "name(uint256)" shapes only.
func validateMethodSig(sig string) error {
	open := strings.IndexByte(sig, '(')
	if open <= 0 || !strings.HasSuffix(sig, ")") {
		return fmt.Errorf("malformed signature %q", sig)
	}
	args := sig[open+1 : len(sig)-1]
	if args != "" && args != "uint256" {
		return fmt.Errorf("unsupported argument list %q (only none or uint256)", args)
	}
	return nil
}

// overrideWithEnv applies environment variables over file values.
// Env always wins so deployments can repoint without editing yaml.
func overrideWithEnv(cfg *Config) {
	if v := os.Getenv("ORACLE_RPC_URL"); v != "" {
		cfg.Network.RPCURL = v
	}
	if v := os.Getenv("ORACLE_WS_URL"); v != "" {
		cfg.Network.WSURL = v
	}
	if v := os.Getenv("ORACLE_CHAIN_ID"); v != "" {
		cfg.Network.ChainID = v
	}
	if v := os.Getenv("ORACLE_CONTRACT"); v != "" {
		cfg.Contract.Address = v
	}
}
