package usecase

import (
	"github.com/posiumhq/posium-codegen/internal/config"
	"github.com/posiumhq/posium-codegen/internal/ports"
	"github.com/posiumhq/posium-codegen/internal/usecase/adapters"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Service struct {
	Script  adapters.ScriptService
	Browser adapters.BrowserService
}

type Params struct {
	fx.In

	Logger   *zap.Logger
	Config   *config.Config
	Browser  ports.BrowserManager
	Resolver ports.SelectorResolver
}

func NewUsecase(params Params) *Service {
	factory := newServiceFactory(params)

	return &Service{
		Script:  factory.CreateScriptService(),
		Browser: factory.CreateBrowserService(),
	}
}
