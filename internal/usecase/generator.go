package usecase

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/posiumhq/posium-codegen/internal/codegen"
	"github.com/posiumhq/posium-codegen/internal/config"
	"github.com/posiumhq/posium-codegen/internal/entity"
	"github.com/posiumhq/posium-codegen/internal/ports"
	"github.com/posiumhq/posium-codegen/pkg/apperr"
	"github.com/posiumhq/posium-codegen/pkg/logg"
	"github.com/posiumhq/posium-codegen/pkg/tracing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	scriptServiceName = "ScriptService"
	scriptTracer      = "usecase.script"
)

// ScriptService turns a recorded plan into Playwright code: it resolves
// stable selectors against the live page, then hands the enriched plan to
// the emitter.
type ScriptService struct {
	config   *config.Config
	logger   *zap.Logger
	tracer   trace.Tracer
	browser  ports.BrowserManager
	resolver ports.SelectorResolver
	emitter  *codegen.Emitter
}

type ScriptServiceParams struct {
	fx.In

	Config   *config.Config
	Logger   *zap.Logger
	Browser  ports.BrowserManager
	Resolver ports.SelectorResolver
}

func NewScriptService(params ScriptServiceParams) *ScriptService {
	return &ScriptService{
		config:   params.Config,
		logger:   params.Logger.With(zap.String(logg.Layer, scriptServiceName)),
		tracer:   otel.Tracer(scriptTracer),
		browser:  params.Browser,
		resolver: params.Resolver,
		emitter:  codegen.NewEmitter(params.Config.CodegenConfig),
	}
}

func (s *ScriptService) LoadPlan(path string) (*entity.Plan, error) {
	const op = "LoadPlan"

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.Wrap(op, apperr.CodeNotFound, err, map[string]any{
			apperr.MetaReason: "plan_read_failed",
			apperr.MetaStage:  apperr.StagePlan,
		})
	}

	var plan entity.Plan

	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, apperr.Wrap(op, apperr.CodeInvalidArgument, err, map[string]any{
			apperr.MetaReason: "plan_parse_failed",
			apperr.MetaStage:  apperr.StagePlan,
		})
	}

	if plan.ID == uuid.Nil {
		plan.ID = uuid.New()
	}

	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = time.Now()
	}

	return &plan, nil
}

// ResolvePlan attaches a stable selector to every act/assert step that was
// recorded with only a raw xpath. Steps resolve strictly one after another.
func (s *ScriptService) ResolvePlan(ctx context.Context, plan *entity.Plan) (resolved int, err error) {
	const op = "ResolvePlan"
	logger := s.logger.With(zap.String(logg.Operation, op), zap.String(logg.Plan, plan.Name))

	ctx, span := tracing.StartSpan(ctx, s.tracer, logger, op,
		attribute.Int("steps_count", len(plan.Steps)))
	defer func() {
		span.End(err)
	}()

	if !s.browser.IsReady() {
		return 0, apperr.WrapErrorWithReason(op, apperr.CodeBrowserNotReady, "browser_not_ready")
	}

	page := s.browser.Page()

	for i := range plan.Steps {
		step := &plan.Steps[i]

		if step.Type != entity.StepTypeAct && step.Type != entity.StepTypeAssert {
			continue
		}

		if step.Command == nil || !step.Command.Success || step.Command.Details == nil {
			continue
		}

		details := step.Command.Details

		if details.XPath == "" || details.Selector != "" {
			continue
		}

		span.AddEvent("resolving step", attribute.Int("step", step.Index))

		info := s.resolver.Resolve(ctx, page, details.XPath)

		if info.Kind == entity.SelectorKindXPath {
			logger.Debug("Step kept its xpath locator", zap.Int(logg.Step, step.Index))

			continue
		}

		details.Selector = info.Selector
		details.SelectorKind = info.Kind
		resolved++

		logger.Info("Resolved stable selector",
			zap.Int(logg.Step, step.Index),
			zap.String(logg.Kind, string(info.Kind)),
			zap.String(logg.Selector, info.Selector))
	}

	return resolved, nil
}

func (s *ScriptService) GenerateScript(ctx context.Context, plan *entity.Plan) (run *entity.GenerationRun, err error) {
	const op = "GenerateScript"
	logger := s.logger.With(zap.String(logg.Operation, op), zap.String(logg.Plan, plan.Name))

	ctx, span := tracing.StartSpan(ctx, s.tracer, logger, op,
		attribute.Int("steps_count", len(plan.Steps)))
	defer func() {
		span.End(err)
	}()

	run = &entity.GenerationRun{
		ID:        uuid.New(),
		PlanID:    plan.ID,
		Steps:     len(plan.Steps),
		StartedAt: time.Now(),
	}

	if s.browser.IsReady() {
		span.AddEvent("resolving selectors")

		resolved, err := s.ResolvePlan(ctx, plan)
		if err != nil {
			logger.Warn("Selector resolution incomplete, emitting with recorded locators", zap.Error(err))
		}

		run.Resolved = resolved
	} else {
		logger.Warn("Browser not ready, emitting with recorded locators only")
	}

	span.AddEvent("emitting script")

	run.Script = s.emitter.Script(plan, run.ID)

	logger.Info("Script generated",
		zap.Int("steps", run.Steps),
		zap.Int("resolved", run.Resolved))

	return run, nil
}

func (s *ScriptService) GenerateRaw(ctx context.Context, plan *entity.Plan) (raw string, err error) {
	const op = "GenerateRaw"
	logger := s.logger.With(zap.String(logg.Operation, op), zap.String(logg.Plan, plan.Name))

	ctx, span := tracing.StartSpan(ctx, s.tracer, logger, op,
		attribute.Int("steps_count", len(plan.Steps)))
	defer func() {
		span.End(err)
	}()

	if s.browser.IsReady() {
		if _, err := s.ResolvePlan(ctx, plan); err != nil {
			logger.Warn("Selector resolution incomplete, emitting with recorded locators", zap.Error(err))
		}
	}

	return s.emitter.Raw(plan.Steps), nil
}
