package repository

import (
	"context"
	"testing"
	"time"

	"trades_marketplace/internal/adapter/persistence/repository/mocks"
	"trades_marketplace/internal/domain/entities"
	"trades_marketplace/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var repoNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func sampleJob() entities.JobRequest {
	return entities.JobRequest{
		ID:           "job-1",
		CustomerID:   "cust-1",
		Category:     "plumbing",
		Subcategory:  "leak",
		Title:        "Fix leaking kitchen tap",
		Description:  "The kitchen mixer tap drips constantly from the spout base.",
		Postcode:     "SW1A1AA",
		Priority:     entities.JobPriorityHigh,
		BudgetMin:    5000,
		BudgetMax:    15000,
		ContactEmail: "c@example.com",
		Status:       entities.JobRequestStatusOpen,
		MaxQuotes:    10,
		Version:      3,
		PostedAt:     repoNow,
		UpdatedAt:    repoNow,
	}
}

func jobAV(t *testing.T, j entities.JobRequest) map[string]types.AttributeValue {
	t.Helper()
	av, err := attributevalue.MarshalMap(toJobRequestItem(j))
	require.NoError(t, err)
	return av
}

func conditionFailed() error {
	return &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
}

func txCancelled(codes ...string) error {
	reasons := make([]types.CancellationReason, 0, len(codes))
	for _, c := range codes {
		reasons = append(reasons, types.CancellationReason{Code: aws.String(c)})
	}
	return &types.TransactionCanceledException{Message: aws.String("Transaction cancelled"), CancellationReasons: reasons}
}

func TestJobRequestDynamoRepository_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	ddb := mocks.NewMockDynamoAPI(ctrl)
	repo := NewJobRequestDynamoRepository(ddb, "")

	t.Run("puts item guarded by attribute_not_exists", func(t *testing.T) {
		ddb.EXPECT().PutItem(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
				assert.Equal(t, DefaultJobRequestsTableName, aws.ToString(in.TableName))
				assert.Equal(t, "attribute_not_exists(#id)", aws.ToString(in.ConditionExpression))
				assert.Equal(t, &types.AttributeValueMemberS{Value: "job-1"}, in.Item["id"])
				assert.Equal(t, &types.AttributeValueMemberN{Value: "3"}, in.Item["version"])
				return &dynamodb.PutItemOutput{}, nil
			})

		got, err := repo.Create(context.Background(), sampleJob())
		require.NoError(t, err)
		assert.Equal(t, "job-1", got.ID)
	})

	t.Run("duplicate id", func(t *testing.T) {
		ddb.EXPECT().PutItem(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, conditionFailed())

		_, err := repo.Create(context.Background(), sampleJob())
		assert.ErrorIs(t, err, interfaces.ErrAlreadyExists)
	})

	t.Run("guest draft omits sparse index keys", func(t *testing.T) {
		j := sampleJob()
		j.CustomerID = ""
		j.Status = entities.JobRequestStatusDraft
		av := jobAV(t, j)
		_, hasCustomer := av["customer_id"]
		assert.False(t, hasCustomer)
		assert.Contains(t, av, "contact_email")
	})
}

func TestJobRequestDynamoRepository_GetByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	ddb := mocks.NewMockDynamoAPI(ctrl)
	repo := NewJobRequestDynamoRepository(ddb, "jobs")

	t.Run("not found returns zero value", func(t *testing.T) {
		ddb.EXPECT().GetItem(gomock.Any(), gomock.Any(), gomock.Any()).Return(&dynamodb.GetItemOutput{}, nil)

		got, err := repo.GetByID(context.Background(), "missing")
		require.NoError(t, err)
		assert.Empty(t, got.ID)
	})

	t.Run("round trips stored item", func(t *testing.T) {
		j := sampleJob()
		cancelled := repoNow.Add(time.Hour)
		j.CancelledAt = &cancelled
		ddb.EXPECT().GetItem(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
				assert.Equal(t, "jobs", aws.ToString(in.TableName))
				assert.True(t, aws.ToBool(in.ConsistentRead))
				return &dynamodb.GetItemOutput{Item: jobAV(t, j)}, nil
			})

		got, err := repo.GetByID(context.Background(), "job-1")
		require.NoError(t, err)
		assert.Equal(t, j, got)
	})
}

func TestJobRequestDynamoRepository_List(t *testing.T) {
	t.Run("customer filter queries customer index and hides drafts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ddb := mocks.NewMockDynamoAPI(ctrl)
		repo := NewJobRequestDynamoRepository(ddb, "")

		ddb.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
				assert.Equal(t, jobRequestsCustomerIndex, aws.ToString(in.IndexName))
				assert.Equal(t, "#customer_id = :customer_id", aws.ToString(in.KeyConditionExpression))
				assert.Equal(t, "#status <> :draft", aws.ToString(in.FilterExpression))
				assert.False(t, aws.ToBool(in.ScanIndexForward))
				return &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{jobAV(t, sampleJob())}}, nil
			})

		got, err := repo.List(context.Background(), interfaces.JobRequestFilter{CustomerID: "cust-1"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "job-1", got[0].ID)
	})

	t.Run("status filter queries status index", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ddb := mocks.NewMockDynamoAPI(ctrl)
		repo := NewJobRequestDynamoRepository(ddb, "")

		ddb.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
				assert.Equal(t, jobRequestsStatusIndex, aws.ToString(in.IndexName))
				assert.Equal(t, "#category = :category", aws.ToString(in.FilterExpression))
				assert.Equal(t, &types.AttributeValueMemberS{Value: "open"}, in.ExpressionAttributeValues[":status"])
				return &dynamodb.QueryOutput{}, nil
			})

		got, err := repo.List(context.Background(), interfaces.JobRequestFilter{
			Status:   entities.JobRequestStatusOpen,
			Category: "plumbing",
		})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("no key scans with postcode prefix and budget overlap", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ddb := mocks.NewMockDynamoAPI(ctrl)
		repo := NewJobRequestDynamoRepository(ddb, "")

		ddb.EXPECT().Scan(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
				assert.Equal(t,
					"begins_with(#postcode, :postcode) AND (#budget_max >= :filter_budget_min OR #budget_max = :zero) AND #budget_min <= :filter_budget_max AND #status <> :draft",
					aws.ToString(in.FilterExpression))
				assert.Equal(t, &types.AttributeValueMemberS{Value: "SW1A"}, in.ExpressionAttributeValues[":postcode"])
				assert.Equal(t, &types.AttributeValueMemberN{Value: "1000"}, in.ExpressionAttributeValues[":filter_budget_min"])
				return &dynamodb.ScanOutput{}, nil
			})

		_, err := repo.List(context.Background(), interfaces.JobRequestFilter{
			Postcode:  "SW1A",
			BudgetMin: 1000,
			BudgetMax: 20000,
		})
		require.NoError(t, err)
	})

	t.Run("admin scan without filters sends no expression", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ddb := mocks.NewMockDynamoAPI(ctrl)
		repo := NewJobRequestDynamoRepository(ddb, "")

		ddb.EXPECT().Scan(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
				assert.Nil(t, in.FilterExpression)
				assert.Nil(t, in.ExpressionAttributeNames)
				assert.Nil(t, in.ExpressionAttributeValues)
				return &dynamodb.ScanOutput{}, nil
			})

		_, err := repo.List(context.Background(), interfaces.JobRequestFilter{IncludeDrafts: true})
		require.NoError(t, err)
	})
}

func TestJobRequestDynamoRepository_ListDraftsByContactEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	ddb := mocks.NewMockDynamoAPI(ctrl)
	repo := NewJobRequestDynamoRepository(ddb, "")

	draft := sampleJob()
	draft.CustomerID = ""
	draft.Status = entities.JobRequestStatusDraft

	ddb.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
			assert.Equal(t, jobRequestsContactEmailIndex, aws.ToString(in.IndexName))
			assert.Equal(t, &types.AttributeValueMemberS{Value: "c@example.com"}, in.ExpressionAttributeValues[":email"])
			return &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{jobAV(t, draft)}}, nil
		})

	got, err := repo.ListDraftsByContactEmail(context.Background(), "c@example.com")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, entities.JobRequestStatusDraft, got[0].Status)
}

func TestJobRequestDynamoRepository_Save(t *testing.T) {
	ctrl := gomock.NewController(t)
	ddb := mocks.NewMockDynamoAPI(ctrl)
	repo := NewJobRequestDynamoRepository(ddb, "")

	t.Run("conditions on expected version and bumps it", func(t *testing.T) {
		ddb.EXPECT().PutItem(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
				assert.Equal(t, "#version = :expected_version", aws.ToString(in.ConditionExpression))
				assert.Equal(t, &types.AttributeValueMemberN{Value: "3"}, in.ExpressionAttributeValues[":expected_version"])
				assert.Equal(t, &types.AttributeValueMemberN{Value: "4"}, in.Item["version"])
				return &dynamodb.PutItemOutput{}, nil
			})

		got, err := repo.Save(context.Background(), sampleJob(), 3)
		require.NoError(t, err)
		assert.Equal(t, int64(4), got.Version)
	})

	t.Run("version mismatch is stale", func(t *testing.T) {
		ddb.EXPECT().PutItem(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, conditionFailed())

		_, err := repo.Save(context.Background(), sampleJob(), 3)
		assert.ErrorIs(t, err, interfaces.ErrStaleJobRequest)
	})
}

func TestTimeFormatting(t *testing.T) {
	early := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	late := early.Add(500 * time.Millisecond)
	assert.Less(t, formatTime(early), formatTime(late))
	assert.Equal(t, late, parseTime(formatTime(late)))
	assert.Equal(t, "", formatTime(time.Time{}))
	assert.Nil(t, parseTimePtr(""))
	assert.Equal(t, early, parseTime("2025-01-02T03:04:05Z"))
}
