package resolver

import (
	"context"

	"github.com/posiumhq/posium-codegen/internal/config"
	"github.com/posiumhq/posium-codegen/internal/entity"
	"github.com/posiumhq/posium-codegen/internal/ports"
	"github.com/posiumhq/posium-codegen/pkg/logg"
	"github.com/posiumhq/posium-codegen/pkg/tracing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	resolverName   = "SelectorResolver"
	resolverTracer = "resolver.orchestrator"
)

// Resolver turns a brittle xpath into the most durable selector available
// on a live page. Resolve is total: every input yields a SelectorInfo,
// never an error.
type Resolver struct {
	config    *config.ResolverConfig
	logger    *zap.Logger
	tracer    trace.Tracer
	validator *Validator
	generator *Generator
	tieBreak  ports.TieBreaker
}

type Params struct {
	fx.In

	Config   *config.Config
	Logger   *zap.Logger
	TieBreak ports.TieBreaker
}

func NewResolver(params Params) *Resolver {
	logger := params.Logger.With(zap.String(logg.Layer, resolverName))
	validator := NewValidator(params.Logger)

	return &Resolver{
		config:    params.Config.ResolverConfig,
		logger:    logger,
		tracer:    otel.Tracer(resolverTracer),
		validator: validator,
		generator: NewGenerator(params.Config.ResolverConfig, params.Logger, validator),
		tieBreak:  params.TieBreak,
	}
}

func (r *Resolver) Resolve(ctx context.Context, page ports.PageProbe, xpath string) (info entity.SelectorInfo) {
	const op = "Resolve"
	logger := r.logger.With(zap.String(logg.Operation, op), zap.String(logg.XPath, xpath))

	ctx, step := tracing.StartSpan(ctx, r.tracer, logger, op, attribute.String("xpath", xpath))
	defer step.End(nil)

	// The whole pipeline fails closed to the xpath fallback.
	defer func() {
		if rec := recover(); rec != nil {
			logger.Warn("Resolution pipeline panicked, falling back to xpath", zap.Any("panic", rec))
			info = entity.XPathFallback(xpath)
		}
	}()

	step.AddEvent("generating candidates")

	candidates, el, definitive := r.generator.Generate(ctx, page, xpath)

	if el == nil {
		logger.Debug("Seed locator did not resolve")

		return entity.XPathFallback(xpath)
	}

	if definitive && len(candidates) == 1 {
		logger.Debug("Candidate tier short-circuited",
			zap.String(logg.Kind, string(candidates[0].Kind)),
			zap.String(logg.Selector, candidates[0].Selector))

		return candidates[0]
	}

	ranked := Rank(candidates)

	if r.tieBreak != nil {
		step.AddEvent("attempting AI tie-break")

		if proposal, ok := r.attemptTieBreak(ctx, page, el, xpath, ranked); ok {
			return proposal
		}
	}

	if len(ranked) == 0 {
		return entity.XPathFallback(xpath)
	}

	top := ranked[0]
	logger.Debug("Resolved selector",
		zap.String(logg.Kind, string(top.Kind)),
		zap.String(logg.Selector, top.Selector))

	return top
}

// attemptTieBreak asks the external adapter for a replacement candidate and
// accepts it only if it still addresses exactly one element. Every adapter
// failure is swallowed.
func (r *Resolver) attemptTieBreak(ctx context.Context, page ports.PageProbe, el ports.Element, xpath string, ranked []entity.SelectorInfo) (entity.SelectorInfo, bool) {
	const op = "attemptTieBreak"
	logger := r.logger.With(zap.String(logg.Operation, op), zap.String(logg.XPath, xpath))

	html, err := el.OuterHTML(ctx)
	if err != nil {
		html = ""
	}

	attrs, err := el.Attributes(ctx)
	if err != nil {
		attrs = map[string]string{}
	}

	proposal, err := r.tieBreak.ProposeSelector(ctx, &entity.TieBreakRequest{
		OriginalXPath:     xpath,
		Candidates:        ranked,
		ElementHTML:       html,
		ElementAttributes: attrs,
	})

	if err != nil || proposal == nil {
		logger.Debug("Tie-break adapter failed, keeping ranked candidates", zap.Error(err))

		return entity.SelectorInfo{}, false
	}

	if !proposal.Kind.Valid() || proposal.Selector == "" {
		logger.Debug("Tie-break proposal malformed, discarding")

		return entity.SelectorInfo{}, false
	}

	if !r.validator.IsUnique(ctx, page, proposal.Kind, proposal.Selector) {
		logger.Debug("Tie-break proposal not unique, discarding",
			zap.String(logg.Kind, string(proposal.Kind)),
			zap.String(logg.Selector, proposal.Selector))

		return entity.SelectorInfo{}, false
	}

	reliability := proposal.Reliability
	if proposal.Kind == entity.SelectorKindXPath || reliability.Rank() > entity.ReliabilityLow.Rank() {
		reliability = entity.ReliabilityLow
	}

	logger.Debug("Tie-break proposal accepted",
		zap.String(logg.Kind, string(proposal.Kind)),
		zap.String(logg.Selector, proposal.Selector))

	return entity.SelectorInfo{
		Selector:    proposal.Selector,
		Kind:        proposal.Kind,
		Reliability: reliability,
	}, true
}
