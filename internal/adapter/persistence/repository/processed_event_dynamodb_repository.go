package repository

import (
	"context"
	"errors"
	"time"

	"pagos_xpto/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultProcessedEventsTableName = "processed_events"

type processedEventItem struct {
	ID         string `dynamodbav:"id"`
	ReceivedAt string `dynamodbav:"received_at"`
}

// ProcessedEventDynamoRepository stores dispatched provider event ids in
// DynamoDB.
//
// Table requirements:
//   - PK: id (string, the provider's event id)
//
// Record relies on a conditional put for its record-if-absent semantics, so
// concurrent redeliveries of the same event race safely: exactly one writer
// wins the condition.
type ProcessedEventDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IProcessedEventRepository = (*ProcessedEventDynamoRepository)(nil)

func NewProcessedEventDynamoRepository(ddb *dynamodb.Client, tableName string) *ProcessedEventDynamoRepository {
	if tableName == "" {
		tableName = defaultProcessedEventsTableName
	}
	return &ProcessedEventDynamoRepository{ddb: ddb, tableName: tableName}
}

// Record writes the event id if absent. Returns false without error when
// the id was already present.
func (r *ProcessedEventDynamoRepository) Record(ctx context.Context, eventID string, receivedAt time.Time) (bool, error) {
	it := processedEventItem{
		ID:         eventID,
		ReceivedAt: receivedAt.UTC().Format(time.RFC3339Nano),
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return false, err
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
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Delete removes a record so a later redelivery can be dispatched again.
func (r *ProcessedEventDynamoRepository) Delete(ctx context.Context, eventID string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: eventID},
		},
	})
	return err
}
