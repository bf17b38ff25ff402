package main

import (
	"flag"

	"github.com/danmuck/artnet/internal/config"
	"github.com/danmuck/artnet/internal/daemon"
	"github.com/danmuck/artnet/internal/logging"
	"github.com/danmuck/artnet/internal/observability"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "cmd/artnetd/config.toml", "daemon config path")
	flag.Parse()

	observability.InitLogger("artnetd")
	cfg, err := config.LoadDaemonConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load daemon config")
	}
	if lvl, ok := logging.ParseLevel(cfg.LogLevel); ok {
		zerolog.SetGlobalLevel(lvl)
	}
	log.Info().Str("path", *configPath).Msg("loaded daemon config")

	svc := daemon.NewService(daemon.ServiceConfigFrom(cfg))
	if err := svc.Run(); err != nil {
		log.Fatal().Err(err).Msg("daemon stopped")
	}
}
