package repository

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"

	"presupuesto_obra/internal/usecase/interfaces"
)

const defaultInventoryTableName = "inventario"

type inventoryItem struct {
	OrganizationID string `dynamodbav:"organization_id"`
	ItemRef        string `dynamodbav:"item_ref"`
	StageSlug      string `dynamodbav:"stage_slug"`
	PrecioARS      string `dynamodbav:"precio_ars"`
}

// InventoryDynamoRepository reads the per-organization price list.
//
// Table requirements:
//   - PK: organization_id (string)
//   - SK: item_ref (string)
//
// Prices are stored in ARS as decimal strings.

type InventoryDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IInventoryRepository = (*InventoryDynamoRepository)(nil)

func NewInventoryDynamoRepository(ddb *dynamodb.Client) *InventoryDynamoRepository {
	return &InventoryDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("INVENTORY_TABLE", defaultInventoryTableName),
	}
}

func (r *InventoryDynamoRepository) PriceFor(ctx context.Context, organizationID, itemRef string) (decimal.Decimal, bool, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"organization_id": &types.AttributeValueMemberS{Value: organizationID},
			"item_ref":        &types.AttributeValueMemberS{Value: itemRef},
		},
	})
	if err != nil {
		return decimal.Decimal{}, false, err
	}
	if len(out.Item) == 0 {
		return decimal.Decimal{}, false, nil
	}

	var it inventoryItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return decimal.Decimal{}, false, err
	}
	price, err := decimal.NewFromString(it.PrecioARS)
	if err != nil {
		return decimal.Decimal{}, false, err
	}
	return price, true, nil
}

func (r *InventoryDynamoRepository) CountItemsForStage(ctx context.Context, organizationID, stageSlug string) (int, error) {
	total := 0
	var lastKey map[string]types.AttributeValue
	for {
		out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			KeyConditionExpression: aws.String("organization_id = :org"),
			FilterExpression:       aws.String("stage_slug = :slug"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":org":  &types.AttributeValueMemberS{Value: organizationID},
				":slug": &types.AttributeValueMemberS{Value: stageSlug},
			},
			Select:            types.SelectCount,
			ExclusiveStartKey: lastKey,
		})
		if err != nil {
			return 0, err
		}
		total += int(out.Count)
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		lastKey = out.LastEvaluatedKey
	}
	return total, nil
}
