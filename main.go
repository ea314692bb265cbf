package main

import "github.com/w31r4/deluse/internal/cli"

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.Execute(version)
}
