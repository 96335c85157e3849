//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/evanlin/lifeboard/internal/bootstrap"
	"github.com/evanlin/lifeboard/internal/domain/auth"
	"github.com/evanlin/lifeboard/internal/domain/content"
	"github.com/evanlin/lifeboard/internal/domain/dashboard"
	"github.com/evanlin/lifeboard/internal/domain/habits"
	"github.com/evanlin/lifeboard/internal/domain/profile"
	"github.com/evanlin/lifeboard/internal/infra/config"
	httpiface "github.com/evanlin/lifeboard/internal/interface/http"
	"github.com/evanlin/lifeboard/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideAuthConfig,
		provideDashboardConfig,
		provideContentConfig,
		providePostgresPool,
		provideEventRepository,
		provideProfileRepository,
		provideContentRepository,
		provideUserRepository,
		provideSeriesStore,
		provideMediaStorage,
		provideEmbedder,
		provideEventSource,
		provideProfileSource,
		habits.NewService,
		profile.NewService,
		dashboard.NewService,
		content.NewService,
		auth.NewService,
		httpiface.NewHandler,
		httpiface.NewContentHandler,
		httpiface.NewAuthHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
