package main

import (
	"os"

	"github.com/TradeAdvisor/whale-radar-main/cmd/whaleradar/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
