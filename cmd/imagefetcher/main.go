package main

import (
	"github.com/bornholm/imagefetcher/internal/command"
	"github.com/bornholm/imagefetcher/internal/command/fetch"
	"github.com/bornholm/imagefetcher/internal/command/resolve"
	"github.com/bornholm/imagefetcher/internal/command/serve"
)

var version = "dev"

func main() {
	command.Main(
		"imagefetcher",
		version,
		"Find and fetch the first image matching a query",
		fetch.Fetch(),
		resolve.Resolve(),
		serve.Serve(),
	)
}
