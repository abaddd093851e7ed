package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/lotwise/backend/cmd/app/server"
	"github.com/lotwise/backend/internal/pkg/bininfo"
)

func Run() {
	app := &cli.App{
		Name:        "lotwise-backend",
		Description: "The Lotwise RV inventory analytics backend. Built with Go, fiber, bun and go.uber.org/fx. Uses NATS as MQ and Redis as state synchronization.",
		Version:     bininfo.Version,
		Commands: []*cli.Command{
			server.Command(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}
