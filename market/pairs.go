package market

import "strings"

// Kraken reports legacy asset codes over the websocket feed (XBT for BTC,
// XDG for DOGE). NormalizeAsset maps them back to their common symbols.
func NormalizeAsset(sym string) string {
	switch sym {
	case "XBT", "XXBT":
		return "BTC"
	case "XETH":
		return "ETH"
	case "XXRP":
		return "XRP"
	case "XDG":
		return "DOGE"
	default:
		return sym
	}
}

// NormalizePair converts an exchange wsname like "XBT/EUR" into the
// canonical "BTC/EUR" form used as the position-store key.
func NormalizePair(wsname string) string {
	parts := strings.Split(wsname, "/")
	if len(parts) != 2 {
		return wsname
	}
	return NormalizeAsset(parts[0]) + "/" + NormalizeAsset(parts[1])
}
