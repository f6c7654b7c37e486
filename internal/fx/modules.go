package fx

import (
	"elo-tracker/internal/cache"
	"elo-tracker/internal/config"
	"elo-tracker/internal/database"
	"elo-tracker/internal/logger"
	"elo-tracker/internal/repository"
	"elo-tracker/internal/riot"
	"elo-tracker/internal/server"
	"elo-tracker/internal/service"

	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	fx.Provide(cache.New),
	// riot api client
	fx.Provide(riot.NewClient),
	fx.Provide(func(c *riot.Client) service.RiotAPI { return c }),
	// repos
	fx.Provide(repository.NewRosterRepository),
	fx.Provide(func(r *repository.RosterRepository) service.RosterStore { return r }),
	// svc
	fx.Provide(service.NewResolverService),
	fx.Provide(service.NewEloService),
	fx.Provide(func(s *service.EloService) server.EloAPI { return s }),
	// server
	fx.Provide(server.NewEloServer),
)
