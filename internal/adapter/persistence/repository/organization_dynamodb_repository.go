package repository

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"presupuesto_obra/internal/usecase/interfaces"
)

const defaultOrganizationsTableName = "organizaciones"

// OrganizationDynamoRepository answers organization existence from the
// organization registry table.
//
// Table requirements:
//   - PK: id (string)
//
// Registration is decoupled from the inventory table on purpose: an
// organization without a single price row is still a registered organization.

type OrganizationDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IOrganizationRepository = (*OrganizationDynamoRepository)(nil)

func NewOrganizationDynamoRepository(ddb *dynamodb.Client) *OrganizationDynamoRepository {
	return &OrganizationDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("ORGANIZATIONS_TABLE", defaultOrganizationsTableName),
	}
}

func (r *OrganizationDynamoRepository) Exists(ctx context.Context, organizationID string) (bool, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: organizationID},
		},
		ProjectionExpression: aws.String("id"),
	})
	if err != nil {
		return false, err
	}
	return len(out.Item) > 0, nil
}
