package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"presupuesto_obra/internal/domain/entities"
	mock_interfaces "presupuesto_obra/internal/usecase/interfaces/mocks"
)

func TestCoefficientResolver_Resolve(t *testing.T) {
	exact := entities.Coefficient{StageSlug: "estructura", VariantKey: "premium"}
	baseline := entities.Coefficient{StageSlug: "estructura", IsBaseline: true}

	t.Run("exact hit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockICoefficientRepository(ctrl)
		repo.EXPECT().GetByStageAndVariant(gomock.Any(), "estructura", "premium").Return(exact, nil)

		r := newCoefficientResolver(repo, NopObserver{})
		res := r.Resolve(context.Background(), "estructura", "premium")
		if res.Kind != entities.ResolutionExact {
			t.Fatalf("kind = %v, want exact", res.Kind)
		}
		if res.Coefficient.VariantKey != "premium" {
			t.Fatalf("unexpected coefficient: %+v", res.Coefficient)
		}
	})

	t.Run("exact miss falls back to baseline", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockICoefficientRepository(ctrl)
		repo.EXPECT().GetByStageAndVariant(gomock.Any(), "estructura", "premium").Return(entities.Coefficient{}, nil)
		repo.EXPECT().GetBaseline(gomock.Any(), "estructura").Return(baseline, nil)

		r := newCoefficientResolver(repo, NopObserver{})
		res := r.Resolve(context.Background(), "estructura", "premium")
		if res.Kind != entities.ResolutionBaseline {
			t.Fatalf("kind = %v, want baseline", res.Kind)
		}
		if !res.Coefficient.IsBaseline {
			t.Fatalf("unexpected coefficient: %+v", res.Coefficient)
		}
	})

	t.Run("exact lookup error degrades to baseline", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockICoefficientRepository(ctrl)
		repo.EXPECT().GetByStageAndVariant(gomock.Any(), "estructura", "premium").Return(entities.Coefficient{}, errors.New("throttled"))
		repo.EXPECT().GetBaseline(gomock.Any(), "estructura").Return(baseline, nil)

		r := newCoefficientResolver(repo, NopObserver{})
		res := r.Resolve(context.Background(), "estructura", "premium")
		if res.Kind != entities.ResolutionBaseline {
			t.Fatalf("kind = %v, want baseline", res.Kind)
		}
	})

	t.Run("no variant requested baseline is exact", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockICoefficientRepository(ctrl)
		repo.EXPECT().GetBaseline(gomock.Any(), "estructura").Return(baseline, nil)

		r := newCoefficientResolver(repo, NopObserver{})
		res := r.Resolve(context.Background(), "estructura", "  ")
		if res.Kind != entities.ResolutionExact {
			t.Fatalf("kind = %v, want exact", res.Kind)
		}
	})

	t.Run("nothing resolvable is missing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockICoefficientRepository(ctrl)
		repo.EXPECT().GetByStageAndVariant(gomock.Any(), "techos", "premium").Return(entities.Coefficient{}, nil)
		repo.EXPECT().GetBaseline(gomock.Any(), "techos").Return(entities.Coefficient{}, nil)

		r := newCoefficientResolver(repo, NopObserver{})
		res := r.Resolve(context.Background(), "techos", "premium")
		if res.Kind != entities.ResolutionMissing {
			t.Fatalf("kind = %v, want missing", res.Kind)
		}
		if !strings.Contains(res.Reason, "premium") {
			t.Fatalf("reason should mention the variant, got %q", res.Reason)
		}
	})

	t.Run("baseline backend failure is missing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockICoefficientRepository(ctrl)
		repo.EXPECT().GetBaseline(gomock.Any(), "techos").Return(entities.Coefficient{}, errors.New("db down"))

		r := newCoefficientResolver(repo, NopObserver{})
		res := r.Resolve(context.Background(), "techos", "")
		if res.Kind != entities.ResolutionMissing {
			t.Fatalf("kind = %v, want missing", res.Kind)
		}
		if !strings.Contains(res.Reason, "db down") {
			t.Fatalf("reason should carry the failure, got %q", res.Reason)
		}
	})
}
