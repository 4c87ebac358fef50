package main

import (
	"github.com/soham247/stellar-portfolio/internal/cli"
	_ "github.com/soham247/stellar-portfolio/internal/logsetup"
	"github.com/soham247/stellar-portfolio/internal/sshserver"
)

func newConfig() cli.Configurable { return sshserver.NewConfig() }

func main() {
	cli.StandardMain(newConfig, sshserver.NewSSHHandler())
}
