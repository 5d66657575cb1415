package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"presupuesto_obra/internal/domain/entities"
	"presupuesto_obra/internal/domain/money"
	"presupuesto_obra/internal/usecase/interfaces"
)

var (
	ErrBudgetNotFound      = errors.New("budget not found")
	ErrBudgetAlreadyExists = errors.New("budget already exists")
	ErrInvalidProjectRef   = errors.New("invalid project_ref")
	ErrInvalidBudgetID     = errors.New("invalid budget id")
	ErrInvalidOrganization = errors.New("invalid organization_id")
	ErrUnknownOrganization = errors.New("unknown organization")
	ErrInvalidArea         = errors.New("area_m2 must be positive")
	ErrInvalidExchangeRate = money.ErrInvalidExchangeRate
	ErrUnsupportedCurrency = money.ErrUnsupportedCurrency
)

const defaultInventoryTimeout = 2 * time.Second

// CalculateBudgetInput are the request parameters of one calculation. Tier
// selects the coefficient variant per stage; an empty tier means "baseline
// everywhere". SelectedStages empty means every catalog stage.
type CalculateBudgetInput struct {
	ProjectRef     string
	OrganizationID string
	AreaM2         decimal.Decimal
	Tier           string
	SelectedStages []string
	ExchangeRate   decimal.Decimal
}

// IBudgetUseCase exposes the budget engine and its lifecycle operations.
//
//   - CalculateBudget runs the full stage-based calculation and persists the
//     result as a pending budget (one per project reference).
//   - Approve/Reject/Cancel drive the lifecycle by project reference.
//   - ListStageSummary supports reporting screens without a calculation.

type IBudgetUseCase interface {
	CalculateBudget(ctx context.Context, input CalculateBudgetInput) (entities.Budget, error)
	ApproveByProjectRef(ctx context.Context, projectRef string) (entities.Budget, error)
	RejectByProjectRef(ctx context.Context, projectRef string) (entities.Budget, error)
	CancelByProjectRef(ctx context.Context, projectRef string) (entities.Budget, error)
	GetByID(ctx context.Context, id string) (entities.Budget, error)
	GetByProjectRef(ctx context.Context, projectRef string) (entities.Budget, error)
	ListStageSummary(ctx context.Context, organizationID string) ([]entities.StageSummary, error)
}

type BudgetUseCase struct {
	repo          interfaces.IBudgetRepository
	stageCatalog  interfaces.IStageCatalogRepository
	coefficients  interfaces.ICoefficientRepository
	organizations interfaces.IOrganizationRepository
	inventory     interfaces.IInventoryRepository
	rates         Rates
	obs           CalcObserver
	invTimeout    time.Duration
}

var _ IBudgetUseCase = (*BudgetUseCase)(nil)

func NewBudgetUseCase(
	repo interfaces.IBudgetRepository,
	stageCatalog interfaces.IStageCatalogRepository,
	coefficients interfaces.ICoefficientRepository,
	organizations interfaces.IOrganizationRepository,
	inventory interfaces.IInventoryRepository,
	rates Rates,
	obs CalcObserver,
) *BudgetUseCase {
	if obs == nil {
		obs = LogObserver{}
	}
	return &BudgetUseCase{
		repo:          repo,
		stageCatalog:  stageCatalog,
		coefficients:  coefficients,
		organizations: organizations,
		inventory:     inventory,
		rates:         rates,
		obs:           obs,
		invTimeout:    defaultInventoryTimeout,
	}
}

func (u *BudgetUseCase) CalculateBudget(ctx context.Context, input CalculateBudgetInput) (entities.Budget, error) {
	projectRef := strings.TrimSpace(input.ProjectRef)
	if projectRef == "" {
		return entities.Budget{}, ErrInvalidProjectRef
	}
	orgID := strings.TrimSpace(input.OrganizationID)
	if orgID == "" {
		return entities.Budget{}, ErrInvalidOrganization
	}
	if input.AreaM2.LessThanOrEqual(decimal.Zero) {
		return entities.Budget{}, ErrInvalidArea
	}
	if input.ExchangeRate.LessThanOrEqual(decimal.Zero) {
		return entities.Budget{}, ErrInvalidExchangeRate
	}

	// Registry check only. A registered organization with an empty price list
	// calculates with the coefficients' embedded prices.
	exists, err := u.organizations.Exists(ctx, orgID)
	if err != nil {
		return entities.Budget{}, err
	}
	if !exists {
		return entities.Budget{}, ErrUnknownOrganization
	}

	// Enforce: 1 budget per project.
	if existing, err := u.repo.GetByProjectRef(ctx, projectRef); err != nil {
		return entities.Budget{}, err
	} else if existing.ID != "" {
		return entities.Budget{}, ErrBudgetAlreadyExists
	}

	result, err := u.buildResult(ctx, orgID, input)
	if err != nil {
		return entities.Budget{}, err
	}

	now := time.Now().UTC()
	b := entities.Budget{
		ID:             projectRef,
		ProjectRef:     projectRef,
		OrganizationID: orgID,
		AreaM2:         input.AreaM2,
		Tier:           strings.TrimSpace(input.Tier),
		TipoCambio:     input.ExchangeRate,
		Result:         result,
		Status:         entities.BudgetStatusPendiente,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return u.repo.Create(ctx, b)
}

// buildResult is the calculation itself: pure over the reference data the
// repositories return. Identical inputs and identical catalog snapshots yield
// an identical result.
func (u *BudgetUseCase) buildResult(ctx context.Context, orgID string, input CalculateBudgetInput) (entities.BudgetResult, error) {
	all, err := u.stageCatalog.ListStages(ctx)
	if err != nil {
		return entities.BudgetResult{}, err
	}
	stages := filterStages(all, input.SelectedStages, u.obs)

	resolver := newCoefficientResolver(u.coefficients, u.obs)
	tier := strings.TrimSpace(input.Tier)

	subtotals := make([]stageSubtotal, 0, len(stages))
	cubierto := decimal.Zero
	for _, stage := range stages {
		cubierto = cubierto.Add(stage.PorcentajeObra)
		items := u.countItems(ctx, orgID, stage.Slug)

		res := resolver.Resolve(ctx, stage.Slug, tier)
		if res.Kind == entities.ResolutionMissing {
			u.obs.StageSkipped(stage.Slug, res.Reason)
			subtotals = append(subtotals, stageSubtotal{
				Stage:            stage,
				ItemsDisponibles: items,
				Skipped:          true,
				SkipReason:       res.Reason,
			})
			continue
		}

		coef := res.Coefficient
		quantity := input.AreaM2.Mul(coef.CantidadPorM2)
		matOverride := u.lookupMaterialPrice(ctx, orgID, coef)

		sub, err := accumulateStage(stage, coef, quantity, input.ExchangeRate, matOverride)
		if err != nil {
			// Unsupported coefficient currency is a data defect, fatal for
			// the whole run.
			return entities.BudgetResult{}, err
		}
		sub.ItemsDisponibles = items
		subtotals = append(subtotals, sub)
	}

	materiales, manoObra, equipos := foldAll(subtotals)

	matBi, err := money.Convert(money.NewLocal(materiales, money.CurrencyARS), input.ExchangeRate)
	if err != nil {
		return entities.BudgetResult{}, err
	}
	moBi, err := money.Convert(money.NewLocal(manoObra, money.CurrencyARS), input.ExchangeRate)
	if err != nil {
		return entities.BudgetResult{}, err
	}
	eqBi, err := money.Convert(money.NewLocal(equipos, money.CurrencyARS), input.ExchangeRate)
	if err != nil {
		return entities.BudgetResult{}, err
	}

	totales, err := totalize(matBi, moBi, eqBi, input.AreaM2, u.rates)
	if err != nil {
		return entities.BudgetResult{}, err
	}

	etapas := make([]entities.StageBreakdown, 0, len(subtotals))
	resolved := 0
	totalItems := 0
	for _, s := range subtotals {
		if !s.Skipped {
			resolved++
		}
		totalItems += s.ItemsDisponibles
		etapas = append(etapas, entities.StageBreakdown{
			Slug:             s.Stage.Slug,
			Nombre:           s.Stage.Nombre,
			Orden:            s.Stage.Orden,
			PorcentajeObra:   s.Stage.PorcentajeObra,
			ItemsDisponibles: s.ItemsDisponibles,
			Materiales:       s.Materiales,
			ManoObra:         s.ManoObra,
			Equipos:          s.Equipos,
			Skipped:          s.Skipped,
			SkipReason:       s.SkipReason,
		})
	}

	return entities.BudgetResult{
		Resumen: entities.Resumen{
			CantidadEtapas:       resolved,
			TotalItemsInventario: totalItems,
			PorcentajeCubierto:   cubierto,
		},
		Etapas:  etapas,
		Totales: totales,
	}, nil
}

// lookupMaterialPrice asks the organization's live price list for the
// coefficient's linked item. Any failure mode (no link, timeout, backend
// error, item absent) falls back to the embedded price and only notifies the
// observer.
func (u *BudgetUseCase) lookupMaterialPrice(ctx context.Context, orgID string, coef entities.Coefficient) *decimal.Decimal {
	if coef.ItemRef == "" || u.inventory == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, u.invTimeout)
	defer cancel()

	price, found, err := u.inventory.PriceFor(ctx, orgID, coef.ItemRef)
	if err != nil {
		u.obs.PriceFallback(coef.StageSlug, coef.ItemRef, err.Error())
		return nil
	}
	if !found {
		u.obs.PriceFallback(coef.StageSlug, coef.ItemRef, "item not in price list")
		return nil
	}
	return &price
}

// countItems is the availability metric for reporting. It never fails a
// calculation.
func (u *BudgetUseCase) countItems(ctx context.Context, orgID, stageSlug string) int {
	if u.inventory == nil {
		return 0
	}
	ctx, cancel := context.WithTimeout(ctx, u.invTimeout)
	defer cancel()

	n, err := u.inventory.CountItemsForStage(ctx, orgID, stageSlug)
	if err != nil {
		u.obs.PriceFallback(stageSlug, "", "item count unavailable: "+err.Error())
		return 0
	}
	return n
}

// filterStages keeps the catalog order regardless of how the caller listed the
// slugs. Unknown slugs are dropped and reported, never fatal.
func filterStages(all []entities.Stage, selected []string, obs CalcObserver) []entities.Stage {
	want := make(map[string]bool, len(selected))
	for _, s := range selected {
		if s = strings.TrimSpace(s); s != "" {
			want[s] = true
		}
	}
	if len(want) == 0 {
		return all
	}

	out := make([]entities.Stage, 0, len(want))
	for _, stage := range all {
		if want[stage.Slug] {
			out = append(out, stage)
			delete(want, stage.Slug)
		}
	}
	for _, s := range selected {
		if s = strings.TrimSpace(s); want[s] {
			obs.UnknownStageDropped(s)
			delete(want, s)
		}
	}
	return out
}

func (u *BudgetUseCase) ApproveByProjectRef(ctx context.Context, projectRef string) (entities.Budget, error) {
	return u.updateStatusByProjectRef(ctx, projectRef, entities.BudgetStatusAprobado)
}

func (u *BudgetUseCase) RejectByProjectRef(ctx context.Context, projectRef string) (entities.Budget, error) {
	return u.updateStatusByProjectRef(ctx, projectRef, entities.BudgetStatusRechazado)
}

func (u *BudgetUseCase) CancelByProjectRef(ctx context.Context, projectRef string) (entities.Budget, error) {
	return u.updateStatusByProjectRef(ctx, projectRef, entities.BudgetStatusCancelado)
}

func (u *BudgetUseCase) updateStatusByProjectRef(ctx context.Context, projectRef string, status entities.BudgetStatus) (entities.Budget, error) {
	projectRef = strings.TrimSpace(projectRef)
	if projectRef == "" {
		return entities.Budget{}, ErrInvalidProjectRef
	}

	updated, err := u.repo.UpdateStatusByProjectRef(ctx, projectRef, status)
	if err != nil {
		return entities.Budget{}, err
	}
	if updated.ID == "" {
		return entities.Budget{}, ErrBudgetNotFound
	}
	return updated, nil
}

func (u *BudgetUseCase) GetByID(ctx context.Context, id string) (entities.Budget, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Budget{}, ErrInvalidBudgetID
	}

	b, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Budget{}, err
	}
	if b.ID == "" {
		return entities.Budget{}, ErrBudgetNotFound
	}
	return b, nil
}

func (u *BudgetUseCase) GetByProjectRef(ctx context.Context, projectRef string) (entities.Budget, error) {
	projectRef = strings.TrimSpace(projectRef)
	if projectRef == "" {
		return entities.Budget{}, ErrInvalidProjectRef
	}

	b, err := u.repo.GetByProjectRef(ctx, projectRef)
	if err != nil {
		return entities.Budget{}, err
	}
	if b.ID == "" {
		return entities.Budget{}, ErrBudgetNotFound
	}
	return b, nil
}

func (u *BudgetUseCase) ListStageSummary(ctx context.Context, organizationID string) ([]entities.StageSummary, error) {
	orgID := strings.TrimSpace(organizationID)
	if orgID == "" {
		return nil, ErrInvalidOrganization
	}

	stages, err := u.stageCatalog.ListStages(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]entities.StageSummary, 0, len(stages))
	for _, stage := range stages {
		summaries = append(summaries, entities.StageSummary{
			Slug:             stage.Slug,
			Nombre:           stage.Nombre,
			Orden:            stage.Orden,
			ItemsDisponibles: u.countItems(ctx, orgID, stage.Slug),
			PorcentajeObra:   stage.PorcentajeObra,
		})
	}
	return summaries, nil
}
