// internal/workers/claims/list-claims/handler.go
package listclaims

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"enre-reclamos/internal/common/errors"
	"enre-reclamos/internal/common/logger"
	"enre-reclamos/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	TaskType = "list-claims"
)

type Handler struct {
	config *Config
	logger logger.Logger
	dynamo DynamoDBService
}

func NewHandler(config *Config, deps ServiceDependencies) (*Handler, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if deps.DynamoDB == nil {
		return nil, fmt.Errorf("dynamodb client is required")
	}
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
		dynamo: deps.DynamoDB,
	}, nil
}

// Execute returns the most recent claims, newest first.
func (h *Handler) Execute(ctx context.Context) (*Output, error) {
	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	resp, err := h.dynamo.Query(ctx, h.buildQuery())
	if err != nil {
		h.logger.Error("claim query failed", map[string]interface{}{"error": err})
		return nil, errors.NewClaimListFailedError(err)
	}

	var records []models.ClaimRecord
	if err := attributevalue.UnmarshalListOfMaps(resp.Items, &records); err != nil {
		return nil, errors.NewClaimListFailedError(fmt.Errorf("decode claims: %w", err))
	}

	// Newest first even if the index order changes.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].UTCTimestamp > records[j].UTCTimestamp
	})
	if len(records) > h.config.Limit {
		records = records[:h.config.Limit]
	}
	for i := range records {
		records[i].Processed = 0
	}

	h.logger.Debug("claims listed", map[string]interface{}{"count": len(records)})

	return &Output{Claims: records, Count: len(records)}, nil
}

func (h *Handler) buildQuery() *dynamodb.QueryInput {
	return &dynamodb.QueryInput{
		TableName:              aws.String(h.config.Table),
		IndexName:              aws.String(IndexName),
		KeyConditionExpression: aws.String("Procesado = :p"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":p": &types.AttributeValueMemberN{Value: strconv.Itoa(models.ProcessedMarker)},
		},
		ScanIndexForward:     aws.Bool(false),
		Limit:                aws.Int32(int32(h.config.Limit)),
		ProjectionExpression: aws.String("DryRun, Fecha, FechaUTC, Id"),
	}
}
