package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"

	"presupuesto_obra/internal/domain/entities"
	"presupuesto_obra/internal/usecase/interfaces"
)

const defaultStagesTableName = "etapas"

type stageItem struct {
	Slug           string `dynamodbav:"slug"`
	Nombre         string `dynamodbav:"nombre"`
	Orden          int    `dynamodbav:"orden"`
	PorcentajeObra string `dynamodbav:"porcentaje_obra"`
}

// StageCatalogDynamoRepository reads the stage catalog from DynamoDB.
//
// Table requirements:
//   - PK: slug (string)
//
// The table is small (a few dozen stages at most), so a full Scan per listing
// is acceptable; ordering by orden happens here since DynamoDB scans are
// unordered.

type StageCatalogDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IStageCatalogRepository = (*StageCatalogDynamoRepository)(nil)

func NewStageCatalogDynamoRepository(ddb *dynamodb.Client) *StageCatalogDynamoRepository {
	return &StageCatalogDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("STAGES_TABLE", defaultStagesTableName),
	}
}

func (r *StageCatalogDynamoRepository) ListStages(ctx context.Context) ([]entities.Stage, error) {
	stages := make([]entities.Stage, 0)

	var startKey map[string]types.AttributeValue
	for {
		out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it stageItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			stage, err := fromStageItem(it)
			if err != nil {
				return nil, err
			}
			stages = append(stages, stage)
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	sort.Slice(stages, func(i, j int) bool { return stages[i].Orden < stages[j].Orden })
	return stages, nil
}

func fromStageItem(it stageItem) (entities.Stage, error) {
	porcentaje, err := decimal.NewFromString(it.PorcentajeObra)
	if err != nil {
		return entities.Stage{}, fmt.Errorf("stage %s: invalid porcentaje_obra %q: %w", it.Slug, it.PorcentajeObra, err)
	}
	return entities.Stage{
		Slug:           it.Slug,
		Nombre:         it.Nombre,
		Orden:          it.Orden,
		PorcentajeObra: porcentaje,
	}, nil
}
