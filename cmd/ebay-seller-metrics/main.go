// Package main is the entry point for ebay-seller-metrics.
package main

import (
	"github.com/donaldgifford/ebay-seller-metrics/cmd/ebay-seller-metrics/cmd"
)

func main() {
	cmd.Execute()
}
