package submitclaim

import (
	"context"
	"fmt"
	"time"

	"enre-reclamos/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// Recorder writes one row per successful claim.
type Recorder struct {
	dynamo DynamoDBService
	table  string
}

func NewRecorder(cfg *Config, client DynamoDBService) *Recorder {
	return &Recorder{dynamo: client, table: cfg.Table}
}

// Record stores claimID stamped at now. The caller decides what to do with the error.
func (r *Recorder) Record(ctx context.Context, claimID string, dryRun bool, now time.Time) (models.ClaimRecord, error) {
	record := models.NewClaimRecord(claimID, dryRun, now)

	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return record, fmt.Errorf("marshal claim record: %w", err)
	}

	if _, err := r.dynamo.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	}); err != nil {
		return record, fmt.Errorf("put claim record: %w", err)
	}
	return record, nil
}
