package evm

import (
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// WeiPerEther is 10^18, the wei scale of the native currency.
var weiPerEther = decimal.New(1, 18)

// FormatEther renders a wei amount as a decimal ether string for display.
// Only used at the presentation boundary. Internal logic stays in wei.
func FormatEther(wei *uint256.Int) string {
	if wei == nil {
		return "0"
	}
	d := decimal.NewFromBigInt(wei.ToBig(), 0)
	return d.Div(weiPerEther).String()
}

// FormatEtherFixed renders a wei amount with a fixed number of decimal places.
func FormatEtherFixed(wei *uint256.Int, places int32) string {
	if wei == nil {
		return decimal.Zero.StringFixed(places)
	}
	d := decimal.NewFromBigInt(wei.ToBig(), 0)
	return d.Div(weiPerEther).StringFixed(places)
}
