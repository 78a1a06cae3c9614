package bootstrap

import (
	"time"

	"github.com/posiumhq/posium-codegen/internal/browser"
	"github.com/posiumhq/posium-codegen/internal/config"
	"github.com/posiumhq/posium-codegen/internal/console"
	"github.com/posiumhq/posium-codegen/internal/ports"
	"github.com/posiumhq/posium-codegen/internal/resolver"
	"github.com/posiumhq/posium-codegen/internal/tiebreak"
	"github.com/posiumhq/posium-codegen/internal/usecase"

	"go.uber.org/fx"
)

func NewApp() *fx.App {
	return fx.New(
		fx.Provide(
			config.GetConfig,
			newLogger,
			newTraceProvider,

			fx.Annotate(browser.NewManager, fx.As(new(ports.BrowserManager))),
			tiebreak.NewTieBreaker,
			fx.Annotate(resolver.NewResolver, fx.As(new(ports.SelectorResolver))),

			usecase.NewUsecase,

			console.NewInterface,
		),

		fx.Invoke(
			runConsole,
		),

		fx.StartTimeout(10*time.Second),
	)
}
