package listclaims

import (
	"context"

	"enre-reclamos/internal/common/logger"
	"enre-reclamos/internal/models"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

type Output struct {
	Claims []models.ClaimRecord `json:"claims"`
	Count  int                  `json:"count"`
}

type DynamoDBService interface {
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

type ServiceDependencies struct {
	Logger   logger.Logger
	DynamoDB DynamoDBService
}
