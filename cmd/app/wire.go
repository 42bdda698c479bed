//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/postforge/postforge/internal/bootstrap"
	"github.com/postforge/postforge/internal/domain/auth"
	"github.com/postforge/postforge/internal/domain/campaigns"
	"github.com/postforge/postforge/internal/domain/generator"
	"github.com/postforge/postforge/internal/domain/posts"
	"github.com/postforge/postforge/internal/infra/config"
	"github.com/postforge/postforge/internal/infra/llm/chatgpt"
	httpiface "github.com/postforge/postforge/internal/interface/http"
	"github.com/postforge/postforge/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideGeneratorConfig,
		providePostsConfig,
		provideAuthConfig,
		provideChatGPTClient,
		providePreviewCache,
		providePgxPool,
		providePostRepository,
		provideCampaignRepository,
		generator.NewService,
		campaigns.NewService,
		posts.NewService,
		auth.NewService,
		wire.Bind(new(generator.ChatClient), new(*chatgpt.Client)),
		wire.Bind(new(posts.GenerationEngine), new(*generator.Service)),
		wire.Bind(new(posts.CampaignCounter), new(campaigns.Service)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
