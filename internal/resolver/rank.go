package resolver

import (
	"sort"

	"github.com/posiumhq/posium-codegen/internal/entity"
)

// Rank orders candidates by reliability tier, then by kind preference. The
// sort is stable, so candidates that tie keep their discovery order. The
// input slice is not modified.
func Rank(candidates []entity.SelectorInfo) []entity.SelectorInfo {
	ranked := make([]entity.SelectorInfo, len(candidates))
	copy(ranked, candidates)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Reliability.Rank() != ranked[j].Reliability.Rank() {
			return ranked[i].Reliability.Rank() < ranked[j].Reliability.Rank()
		}

		return ranked[i].Kind.PreferenceRank() < ranked[j].Kind.PreferenceRank()
	})

	return ranked
}
