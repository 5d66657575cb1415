package usecase

import (
	"context"
	"fmt"
	"strings"

	"presupuesto_obra/internal/domain/entities"
	"presupuesto_obra/internal/usecase/interfaces"
)

// coefficientResolver performs the two-step coefficient lookup for a stage:
// exact (stage, variant) row first, then the stage baseline. Backend failures
// on the exact lookup degrade to the baseline path; only when neither row can
// be obtained does the stage become Missing, which the caller reports as
// skipped instead of failing the run.
type coefficientResolver struct {
	repo interfaces.ICoefficientRepository
	obs  CalcObserver
}

func newCoefficientResolver(repo interfaces.ICoefficientRepository, obs CalcObserver) coefficientResolver {
	return coefficientResolver{repo: repo, obs: obs}
}

func (r coefficientResolver) Resolve(ctx context.Context, stageSlug, variantKey string) entities.Resolution {
	variantKey = strings.TrimSpace(variantKey)

	if variantKey != "" {
		coef, err := r.repo.GetByStageAndVariant(ctx, stageSlug, variantKey)
		if err == nil && coef.StageSlug != "" {
			return entities.Resolution{Kind: entities.ResolutionExact, Coefficient: coef}
		}
		// A backend failure on the exact lookup degrades to the baseline
		// path, same as an absent row.
		r.obs.BaselineFallback(stageSlug, variantKey)
	}

	base, err := r.repo.GetBaseline(ctx, stageSlug)
	if err != nil {
		return entities.Resolution{
			Kind:   entities.ResolutionMissing,
			Reason: fmt.Sprintf("baseline lookup failed: %v", err),
		}
	}
	if base.StageSlug == "" {
		reason := "no baseline coefficient"
		if variantKey != "" {
			reason = fmt.Sprintf("no coefficient for variant %q and no baseline", variantKey)
		}
		return entities.Resolution{Kind: entities.ResolutionMissing, Reason: reason}
	}

	kind := entities.ResolutionBaseline
	if variantKey == "" {
		// No variant requested: the baseline is the exact answer.
		kind = entities.ResolutionExact
	}
	return entities.Resolution{Kind: kind, Coefficient: base}
}
