package resolver

import (
	"context"

	"github.com/posiumhq/posium-codegen/internal/entity"
	"github.com/posiumhq/posium-codegen/internal/ports"
	"github.com/posiumhq/posium-codegen/pkg/logg"

	"go.uber.org/zap"
)

const validatorName = "UniquenessValidator"

// Validator checks that a candidate selector addresses exactly one element
// on the live page. Probe errors count as not unique.
type Validator struct {
	logger *zap.Logger
}

func NewValidator(logger *zap.Logger) *Validator {
	return &Validator{
		logger: logger.With(zap.String(logg.Layer, validatorName)),
	}
}

func (v *Validator) IsUnique(ctx context.Context, page ports.PageProbe, kind entity.SelectorKind, selector string) bool {
	count, err := page.Count(ctx, kind, selector)
	if err != nil {
		v.logger.Debug("Uniqueness query failed, treating as not unique",
			zap.String(logg.Kind, string(kind)),
			zap.String(logg.Selector, selector),
			zap.Error(err))

		return false
	}

	return count == 1
}
