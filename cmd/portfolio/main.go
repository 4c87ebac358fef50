package main

import (
	"github.com/soham247/stellar-portfolio/internal/cli"
	_ "github.com/soham247/stellar-portfolio/internal/logsetup"
	"github.com/soham247/stellar-portfolio/internal/site"
)

func newConfig() cli.Configurable { return site.NewConfig() }

func main() {
	cli.StandardMain(newConfig, site.NewSiteHandler())
}
