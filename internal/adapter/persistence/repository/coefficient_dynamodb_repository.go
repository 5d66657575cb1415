package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"

	"presupuesto_obra/internal/domain/entities"
	"presupuesto_obra/internal/usecase/interfaces"
)

const (
	defaultCoefficientsTableName = "coeficientes"

	// baselineVariantKey is the reserved sort-key value for a stage's fallback
	// row. Variant keys from the tier catalog never collide with it.
	baselineVariantKey = "base"
)

type coefficientItem struct {
	StageSlug           string `dynamodbav:"stage_slug"`
	VariantKey          string `dynamodbav:"variant_key"`
	Unidad              string `dynamodbav:"unidad"`
	CantidadPorM2       string `dynamodbav:"cantidad_por_m2"`
	MaterialesPorUnidad string `dynamodbav:"materiales_por_unidad"`
	ManoObraPorUnidad   string `dynamodbav:"mano_obra_por_unidad"`
	EquiposPorUnidad    string `dynamodbav:"equipos_por_unidad"`
	Moneda              string `dynamodbav:"moneda"`
	IsBaseline          bool   `dynamodbav:"is_baseline"`
	ItemRef             string `dynamodbav:"item_ref,omitempty"`
}

// CoefficientDynamoRepository reads coefficient rows from DynamoDB.
//
// Table requirements:
//   - PK: stage_slug (string)
//   - SK: variant_key (string, "base" for the baseline row)

type CoefficientDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ICoefficientRepository = (*CoefficientDynamoRepository)(nil)

func NewCoefficientDynamoRepository(ddb *dynamodb.Client) *CoefficientDynamoRepository {
	return &CoefficientDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("COEFFICIENTS_TABLE", defaultCoefficientsTableName),
	}
}

func (r *CoefficientDynamoRepository) GetByStageAndVariant(ctx context.Context, stageSlug, variantKey string) (entities.Coefficient, error) {
	return r.get(ctx, stageSlug, variantKey)
}

func (r *CoefficientDynamoRepository) GetBaseline(ctx context.Context, stageSlug string) (entities.Coefficient, error) {
	return r.get(ctx, stageSlug, baselineVariantKey)
}

func (r *CoefficientDynamoRepository) get(ctx context.Context, stageSlug, variantKey string) (entities.Coefficient, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"stage_slug":  &types.AttributeValueMemberS{Value: stageSlug},
			"variant_key": &types.AttributeValueMemberS{Value: variantKey},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Coefficient{}, err
	}
	if len(out.Item) == 0 {
		return entities.Coefficient{}, nil
	}

	var it coefficientItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Coefficient{}, err
	}
	return fromCoefficientItem(it)
}

// fromCoefficientItem rejects rows with malformed decimals instead of
// turning them into silent zero costs.
func fromCoefficientItem(it coefficientItem) (entities.Coefficient, error) {
	cantidad, err := decimal.NewFromString(it.CantidadPorM2)
	if err != nil {
		return entities.Coefficient{}, fmt.Errorf("coefficient %s/%s: invalid cantidad_por_m2 %q: %w", it.StageSlug, it.VariantKey, it.CantidadPorM2, err)
	}
	materiales, err := decimal.NewFromString(it.MaterialesPorUnidad)
	if err != nil {
		return entities.Coefficient{}, fmt.Errorf("coefficient %s/%s: invalid materiales_por_unidad %q: %w", it.StageSlug, it.VariantKey, it.MaterialesPorUnidad, err)
	}
	manoObra, err := decimal.NewFromString(it.ManoObraPorUnidad)
	if err != nil {
		return entities.Coefficient{}, fmt.Errorf("coefficient %s/%s: invalid mano_obra_por_unidad %q: %w", it.StageSlug, it.VariantKey, it.ManoObraPorUnidad, err)
	}
	equipos, err := decimal.NewFromString(it.EquiposPorUnidad)
	if err != nil {
		return entities.Coefficient{}, fmt.Errorf("coefficient %s/%s: invalid equipos_por_unidad %q: %w", it.StageSlug, it.VariantKey, it.EquiposPorUnidad, err)
	}

	variantKey := it.VariantKey
	if variantKey == baselineVariantKey {
		variantKey = ""
	}

	return entities.Coefficient{
		StageSlug:           it.StageSlug,
		VariantKey:          variantKey,
		Unidad:              it.Unidad,
		CantidadPorM2:       cantidad,
		MaterialesPorUnidad: materiales,
		ManoObraPorUnidad:   manoObra,
		EquiposPorUnidad:    equipos,
		Moneda:              it.Moneda,
		IsBaseline:          it.IsBaseline,
		ItemRef:             it.ItemRef,
	}, nil
}
