package serve

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bornholm/imagefetcher/internal/command/common"
	"github.com/bornholm/imagefetcher/internal/http/api"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func Serve() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the image search over http",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "address",
				Value:   ":8080",
				Aliases: []string{"a"},
				EnvVars: []string{"IMAGEFETCHER_ADDRESS"},
				Usage:   "The address to listen on",
			},
		}, common.Flags()...),
		Action: func(cliCtx *cli.Context) error {
			f, release, err := common.NewFetcher(cliCtx)
			if err != nil {
				return errors.Wrap(err, "could not create fetcher")
			}

			defer release()

			if !cliCtx.Bool("debug") {
				gin.SetMode(gin.ReleaseMode)
			}

			router := gin.New()
			router.Use(gin.Recovery())

			api.RegisterRoutes(router, f)

			server := &http.Server{
				Addr:    cliCtx.String("address"),
				Handler: router,
			}

			ctx, stop := signal.NotifyContext(cliCtx.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			go func() {
				<-ctx.Done()

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.ErrorContext(shutdownCtx, "could not shutdown server", slog.Any("error", errors.WithStack(err)))
				}
			}()

			slog.InfoContext(ctx, "listening", slog.String("address", server.Addr))

			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return errors.WithStack(err)
			}

			return nil
		},
	}
}
