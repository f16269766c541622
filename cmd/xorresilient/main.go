// Package main is the xorresilient command: it trains small networks on XOR
// with resilient propagation and compares activation functions.
package main

import "github.com/born-ml/xorresilient/internal/cli"

func main() {
	cli.Execute()
}
