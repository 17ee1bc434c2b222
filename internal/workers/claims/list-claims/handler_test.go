// internal/workers/claims/list-claims/handler_test.go
package listclaims

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	apperrors "enre-reclamos/internal/common/errors"
	"enre-reclamos/internal/common/logger"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockDynamoDBService struct {
	QueryFunc func(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

func (m *MockDynamoDBService) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	return m.QueryFunc(ctx, params, optFns...)
}

func claimItem(id, utc string, dryRun bool) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"Id":        &types.AttributeValueMemberS{Value: id},
		"Fecha":     &types.AttributeValueMemberS{Value: "local " + utc},
		"FechaUTC":  &types.AttributeValueMemberS{Value: utc},
		"DryRun":    &types.AttributeValueMemberBOOL{Value: dryRun},
		"Procesado": &types.AttributeValueMemberN{Value: "1"},
	}
}

func createTestConfig() *Config {
	cfg := DefaultConfig()
	cfg.Table = "reclamo-enre"
	return cfg
}

func TestHandler_Execute_Query(t *testing.T) {
	var got *dynamodb.QueryInput
	mock := &MockDynamoDBService{
		QueryFunc: func(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
			got = params
			return &dynamodb.QueryOutput{}, nil
		},
	}
	h, err := NewHandler(createTestConfig(), ServiceDependencies{Logger: logger.NewTestLogger(t), DynamoDB: mock})
	require.NoError(t, err)

	output, err := h.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, output.Count)

	require.NotNil(t, got)
	assert.Equal(t, "reclamo-enre", *got.TableName)
	assert.Equal(t, "FechaOrdenada", *got.IndexName)
	assert.Equal(t, "Procesado = :p", *got.KeyConditionExpression)
	assert.Equal(t, &types.AttributeValueMemberN{Value: "1"}, got.ExpressionAttributeValues[":p"])
	assert.False(t, *got.ScanIndexForward)
	assert.Equal(t, int32(10), *got.Limit)
	assert.Equal(t, "DryRun, Fecha, FechaUTC, Id", *got.ProjectionExpression)
}

func TestHandler_Execute_OrderingAndCap(t *testing.T) {
	// Items arrive unordered and include the marker; more than the cap.
	items := []map[string]types.AttributeValue{}
	for i := 0; i < 12; i++ {
		items = append(items, claimItem(fmt.Sprintf("W%06d", i), fmt.Sprintf("2024-03-%02dT10:00:00", (i*5)%12+1), i%2 == 0))
	}
	mock := &MockDynamoDBService{
		QueryFunc: func(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
			return &dynamodb.QueryOutput{Items: items}, nil
		},
	}
	h, err := NewHandler(createTestConfig(), ServiceDependencies{Logger: logger.NewTestLogger(t), DynamoDB: mock})
	require.NoError(t, err)

	output, err := h.Execute(context.Background())
	require.NoError(t, err)

	require.Len(t, output.Claims, 10)
	assert.Equal(t, 10, output.Count)
	for i := 1; i < len(output.Claims); i++ {
		assert.Greater(t, output.Claims[i-1].UTCTimestamp, output.Claims[i].UTCTimestamp)
	}

	raw, err := json.Marshal(output.Claims)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "Procesado")

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.ElementsMatch(t, []string{"Id", "Fecha", "FechaUTC", "DryRun"}, keys(decoded[0]))
}

func TestHandler_Execute_QueryError(t *testing.T) {
	mock := &MockDynamoDBService{
		QueryFunc: func(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
			return nil, errors.New("ResourceNotFoundException")
		},
	}
	h, err := NewHandler(createTestConfig(), ServiceDependencies{Logger: logger.NewTestLogger(t), DynamoDB: mock})
	require.NoError(t, err)

	output, err := h.Execute(context.Background())
	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeClaimListFailed))
}

func TestConfig_Validate(t *testing.T) {
	cfg := createTestConfig()
	cfg.Limit = 11
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	assert.Error(t, cfg.Validate())
}

func keys(m map[string]interface{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
