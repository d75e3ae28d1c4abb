package resolve

import (
	"fmt"
	"strings"

	"github.com/bornholm/imagefetcher/internal/command/common"
	"github.com/bornholm/imagefetcher/pkg/search"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func Resolve() *cli.Command {
	return &cli.Command{
		Name:  "resolve",
		Usage: "Print the url of the first image found for the given query",
		Flags: append([]cli.Flag{common.QueryFlag()}, common.Flags()...),
		Action: func(cliCtx *cli.Context) error {
			query := strings.TrimSpace(cliCtx.String("query"))
			if query == "" {
				return errors.New("query must not be blank")
			}

			f, release, err := common.NewFetcher(cliCtx)
			if err != nil {
				return errors.Wrap(err, "could not create fetcher")
			}

			defer release()

			url, err := f.Resolve(cliCtx.Context, query)
			if err != nil {
				if errors.Is(err, search.ErrNoResult) {
					return cli.Exit("No image found. Please try again.", 2)
				}

				return errors.Wrap(err, "could not resolve image url")
			}

			fmt.Fprintln(cliCtx.App.Writer, url)

			return nil
		},
	}
}
