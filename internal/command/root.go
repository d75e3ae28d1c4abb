package command

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/bornholm/imagefetcher/internal/logx"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func Main(name string, version string, usage string, commands ...*cli.Command) {
	app := &cli.App{
		Name:     name,
		Usage:    usage,
		Commands: commands,
		Version:  version,
		Before: func(ctx *cli.Context) error {
			workdir := ctx.String("workdir")
			// Switch to new working directory if defined
			if workdir != "" {
				if err := os.Chdir(workdir); err != nil {
					return errors.Wrap(err, "could not change working directory")
				}
			}

			logger, err := NewLogger(ctx.App.ErrWriter, ctx.String("log-level"), ctx.String("log-format"))
			if err != nil {
				return errors.WithStack(err)
			}

			slog.SetDefault(logger)

			return nil
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "workdir",
				Value:   "",
				EnvVars: []string{"IMAGEFETCHER_WORKDIR"},
				Usage:   "The working directory",
			},
			&cli.BoolFlag{
				Name:    "debug",
				EnvVars: []string{"IMAGEFETCHER_DEBUG"},
				Usage:   "Enable debug mode",
			},
			&cli.StringFlag{
				Name:    "log-level",
				EnvVars: []string{"IMAGEFETCHER_LOG_LEVEL"},
				Usage:   "Set logging level (debug, info, warn or error)",
				Value:   "warn",
			},
			&cli.StringFlag{
				Name:    "log-format",
				EnvVars: []string{"IMAGEFETCHER_LOG_FORMAT"},
				Usage:   "Set logging format (text or json)",
				Value:   "text",
			},
		},
	}

	app.ExitErrHandler = func(ctx *cli.Context, err error) {
		if err == nil {
			return
		}

		code := 1

		var exitCoder cli.ExitCoder
		if errors.As(err, &exitCoder) {
			code = exitCoder.ExitCode()
			if message := exitCoder.Error(); message != "" {
				fmt.Fprintln(ctx.App.ErrWriter, message)
			}
		} else if debug := ctx.Bool("debug"); !debug {
			slog.ErrorContext(ctx.Context, err.Error())
		} else {
			slog.ErrorContext(ctx.Context, fmt.Sprintf("%+v", err))
		}

		os.Exit(code)
	}

	sort.Sort(cli.FlagsByName(app.Flags))
	sort.Sort(cli.CommandsByName(app.Commands))

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}

// NewLogger creates the application logger. Records carry the attributes
// attached to their context with logx.WithAttrs.
func NewLogger(w io.Writer, level string, format string) (*slog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}

	var slogLevel slog.Level
	if err := slogLevel.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return nil, errors.Wrapf(err, "invalid log level '%s'", level)
	}

	options := &slog.HandlerOptions{
		Level: slogLevel,
	}

	var handler slog.Handler

	switch format {
	case "json":
		handler = slog.NewJSONHandler(w, options)
	case "text", "":
		handler = slog.NewTextHandler(w, options)
	default:
		return nil, errors.Errorf("unknown log format '%s'", format)
	}

	return slog.New(logx.ContextHandler{Handler: handler}), nil
}
