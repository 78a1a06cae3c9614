package adapters

import (
	"context"

	"github.com/posiumhq/posium-codegen/internal/entity"
)

type ScriptService interface {
	LoadPlan(path string) (*entity.Plan, error)
	ResolvePlan(ctx context.Context, plan *entity.Plan) (int, error)
	GenerateScript(ctx context.Context, plan *entity.Plan) (*entity.GenerationRun, error)
	GenerateRaw(ctx context.Context, plan *entity.Plan) (string, error)
}

type BrowserService interface {
	Launch(ctx context.Context) error
	Close(ctx context.Context) error
	Navigate(ctx context.Context, url string) error
	IsReady() bool
}
