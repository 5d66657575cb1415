package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"presupuesto_obra/internal/domain/entities"
	"presupuesto_obra/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const defaultBudgetsTableName = "presupuestos"

type budgetItem struct {
	ID             string `dynamodbav:"id"`
	ProjectRef     string `dynamodbav:"project_ref"`
	OrganizationID string `dynamodbav:"organization_id"`
	AreaM2         string `dynamodbav:"area_m2"`
	Tier           string `dynamodbav:"tier"`
	TipoCambio     string `dynamodbav:"tipo_cambio"`
	Result         string `dynamodbav:"resultado"`
	Status         string `dynamodbav:"status"`
	CreatedAt      string `dynamodbav:"created_at"`
	UpdatedAt      string `dynamodbav:"updated_at"`
}

// BudgetDynamoRepository persists Budget entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// We purposely use the project reference as PK (budget ID) to guarantee
// 1 budget per project. This keeps the approve/reject/cancel operations
// simple and efficient.
//
// The itemized result is stored as a JSON document string: DynamoDB never
// queries inside it, and the JSON codec already round-trips every decimal
// exactly.

type BudgetDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IBudgetRepository = (*BudgetDynamoRepository)(nil)

func NewBudgetDynamoRepository(ddb *dynamodb.Client) *BudgetDynamoRepository {
	return &BudgetDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("BUDGETS_TABLE", defaultBudgetsTableName),
	}
}

func (r *BudgetDynamoRepository) Create(ctx context.Context, b entities.Budget) (entities.Budget, error) {
	it, err := toBudgetItem(b)
	if err != nil {
		return entities.Budget{}, err
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Budget{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Budget{}, err
	}
	return b, nil
}

func (r *BudgetDynamoRepository) GetByID(ctx context.Context, id string) (entities.Budget, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Budget{}, err
	}
	if len(out.Item) == 0 {
		return entities.Budget{}, nil
	}

	var it budgetItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Budget{}, err
	}
	return fromBudgetItem(it)
}

func (r *BudgetDynamoRepository) GetByProjectRef(ctx context.Context, projectRef string) (entities.Budget, error) {
	// Domain rule: budget ID equals the project reference. Resolve by PK.
	return r.GetByID(ctx, projectRef)
}

func (r *BudgetDynamoRepository) UpdateStatusByProjectRef(ctx context.Context, projectRef string, status entities.BudgetStatus) (entities.Budget, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: projectRef},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #status = :status, #updated_at = :updated_at"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status":     &types.AttributeValueMemberS{Value: string(status)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		},
		ExpressionAttributeNames: mergeNames(map[string]string{
			"#status":     "status",
			"#updated_at": "updated_at",
		}, map[string]string{"#id": "id"}),
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Budget{}, nil
		}
		return entities.Budget{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Budget{}, nil
	}
	var it budgetItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Budget{}, err
	}
	return fromBudgetItem(it)
}

func toBudgetItem(b entities.Budget) (budgetItem, error) {
	result, err := json.Marshal(b.Result)
	if err != nil {
		return budgetItem{}, err
	}
	return budgetItem{
		ID:             b.ID,
		ProjectRef:     b.ProjectRef,
		OrganizationID: b.OrganizationID,
		AreaM2:         b.AreaM2.String(),
		Tier:           b.Tier,
		TipoCambio:     b.TipoCambio.String(),
		Result:         string(result),
		Status:         string(b.Status),
		CreatedAt:      b.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:      b.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}, nil
}

func fromBudgetItem(it budgetItem) (entities.Budget, error) {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	areaM2, err := decimal.NewFromString(it.AreaM2)
	if err != nil {
		return entities.Budget{}, fmt.Errorf("budget %s: invalid area_m2 %q: %w", it.ID, it.AreaM2, err)
	}
	tipoCambio, err := decimal.NewFromString(it.TipoCambio)
	if err != nil {
		return entities.Budget{}, fmt.Errorf("budget %s: invalid tipo_cambio %q: %w", it.ID, it.TipoCambio, err)
	}

	var result entities.BudgetResult
	if it.Result != "" {
		if err := json.Unmarshal([]byte(it.Result), &result); err != nil {
			return entities.Budget{}, err
		}
	}

	return entities.Budget{
		ID:             it.ID,
		ProjectRef:     it.ProjectRef,
		OrganizationID: it.OrganizationID,
		AreaM2:         areaM2,
		Tier:           it.Tier,
		TipoCambio:     tipoCambio,
		Result:         result,
		Status:         entities.BudgetStatus(it.Status),
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}, nil
}
