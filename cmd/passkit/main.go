package main

import "github.com/Skpow1234/passkit/internal/cli"

func main() {
	cli.Execute()
}
