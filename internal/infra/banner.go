package infra

import (
	"fmt"
)

// ANSI Color Codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorCyan   = "\033[36m"
)

// PrintBanner displays the startup banner with the active network.
func PrintBanner(cfg *Config) {
	color := ColorCyan
	if cfg.Network.ChainID != "0x1" {
		// Non-mainnet deployments get the loud color so nobody mints
		// test assets thinking they are live.
		color = ColorYellow
	}

	fmt.Println()
	fmt.Printf("%s###########################################################%s\n", color, ColorReset)
	fmt.Printf("%s#                                                         #%s\n", color, ColorReset)
	fmt.Printf("%s#               🔮 Oracle Vision Mint Console             #%s\n", color, ColorReset)
	fmt.Printf("%s#                                                         #%s\n", color, ColorReset)
	fmt.Printf("%s#   NETWORK:  %-35s #%s\n", color, cfg.Network.ChainName, ColorReset)
	fmt.Printf("%s#   CHAIN:    %-35s #%s\n", color, cfg.Network.ChainID, ColorReset)
	fmt.Printf("%s#   CONTRACT: %-35s #%s\n", color, shortHex(cfg.Contract.Address), ColorReset)
	fmt.Printf("%s#   VERSION:  %-35s #%s\n", color, cfg.App.Version, ColorReset)
	fmt.Printf("%s#                                                         #%s\n", color, ColorReset)
	fmt.Printf("%s###########################################################%s\n", color, ColorReset)
	fmt.Println()
}

func shortHex(s string) string {
	if len(s) <= 14 {
		return s
	}
	return s[:8] + "…" + s[len(s)-6:]
}
