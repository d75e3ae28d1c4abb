package fetch

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/bornholm/imagefetcher/internal/command/common"
	"github.com/bornholm/imagefetcher/pkg/fetcher"
	"github.com/disintegration/imaging"
	"github.com/gosimple/slug"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.yaml.in/yaml/v3"
)

const exitNoImage = 2

type Metadata struct {
	Query  string `yaml:"query"`
	URL    string `yaml:"url"`
	Format string `yaml:"format"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Output string `yaml:"output"`
}

func Fetch() *cli.Command {
	flags := append([]cli.Flag{
		common.QueryFlag(),
		&cli.StringFlag{
			Name:      "output",
			Value:     "",
			Aliases:   []string{"o"},
			EnvVars:   []string{"IMAGEFETCHER_OUTPUT"},
			TakesFile: true,
			Usage:     "The image file to write, its extension selects the encoding. Default to the slug of the query",
		},
		&cli.BoolFlag{
			Name:    "metadata",
			Aliases: []string{"m"},
			EnvVars: []string{"IMAGEFETCHER_METADATA"},
			Usage:   "Print the image metadata as YAML on stdout",
		},
	}, common.Flags()...)

	return &cli.Command{
		Name:  "fetch",
		Usage: "Fetch the first image found for the given query",
		Flags: flags,
		Action: func(cliCtx *cli.Context) error {
			query := strings.TrimSpace(cliCtx.String("query"))
			if query == "" {
				return errors.New("query must not be blank")
			}

			f, release, err := common.NewFetcher(cliCtx, fetcher.WithObserver(logState))
			if err != nil {
				return errors.Wrap(err, "could not create fetcher")
			}

			defer release()

			ctx := cliCtx.Context

			slog.InfoContext(ctx, "searching image", slog.String("query", query))

			outcome := f.Fetch(ctx, query)

			switch outcome.Status {
			case fetcher.StatusFound:
			case fetcher.StatusError:
				return cli.Exit(outcome.Caption(), 1)
			default:
				return cli.Exit(outcome.Caption(), exitNoImage)
			}

			output := cliCtx.String("output")
			if output == "" {
				output = defaultOutput(query, outcome.Image.Format)
			}

			if err := imaging.Save(outcome.Image, output); err != nil {
				return errors.Wrapf(err, "failed to write image")
			}

			slog.InfoContext(ctx, "image written", slog.String("output", output))

			if !cliCtx.Bool("metadata") {
				return nil
			}

			metadata := Metadata{
				Query:  query,
				URL:    outcome.URL,
				Format: outcome.Image.Format,
				Width:  outcome.Image.Width(),
				Height: outcome.Image.Height(),
				Output: output,
			}

			// Inline images would flood the output
			if strings.HasPrefix(metadata.URL, "data:") {
				metadata.URL = "inline"
			}

			encoder := yaml.NewEncoder(os.Stdout)
			defer encoder.Close()

			if err := encoder.Encode(metadata); err != nil {
				return errors.Wrapf(err, "failed to write image metadata")
			}

			return nil
		},
	}
}

// defaultOutput names the image file after the query, or "image" when the
// query has no sluggable character.
func defaultOutput(query string, format string) string {
	name := slug.Make(query)
	if name == "" {
		name = "image"
	}

	return name + "." + extension(format)
}

// extension returns a file extension imaging can encode for the given
// decoded format.
func extension(format string) string {
	switch format {
	case "jpeg":
		return "jpg"
	case "gif", "bmp", "tiff", "png":
		return format
	default:
		return "png"
	}
}

func logState(ctx context.Context, state fetcher.State) {
	slog.InfoContext(ctx, "pipeline state", slog.String("state", string(state)))
}
