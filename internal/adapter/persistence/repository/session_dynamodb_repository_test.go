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

func TestSessionDynamoRepository_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	ddb := mocks.NewMockDynamoAPI(ctrl)
	repo := NewSessionDynamoRepository(ddb, "")

	expires := repoNow.Add(24 * time.Hour)
	ddb.EXPECT().PutItem(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
			assert.Equal(t, DefaultSessionsTableName, aws.ToString(in.TableName))
			assert.Equal(t, &types.AttributeValueMemberS{Value: "hash-1"}, in.Item["token"])
			assert.Equal(t, avNumber(expires.Unix()), in.Item[ttlAttribute])
			return &dynamodb.PutItemOutput{}, nil
		})

	err := repo.Create(context.Background(), entities.Session{Token: "hash-1", UserID: "user-1", CreatedAt: repoNow, ExpiresAt: expires})
	require.NoError(t, err)
}

func TestSessionDynamoRepository_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	ddb := mocks.NewMockDynamoAPI(ctrl)
	repo := NewSessionDynamoRepository(ddb, "sessions-test")
	repo.now = func() time.Time { return repoNow }

	item := func(expires time.Time) map[string]types.AttributeValue {
		av, err := attributevalue.MarshalMap(sessionItem{
			Token:     "hash-1",
			UserID:    "user-1",
			CreatedAt: formatTime(repoNow.Add(-time.Hour)),
			ExpiresAt: formatTime(expires),
			TTL:       expires.Unix(),
		})
		require.NoError(t, err)
		return av
	}

	t.Run("live session", func(t *testing.T) {
		ddb.EXPECT().GetItem(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&dynamodb.GetItemOutput{Item: item(repoNow.Add(time.Hour))}, nil)

		got, err := repo.Get(context.Background(), "hash-1")
		require.NoError(t, err)
		assert.Equal(t, "user-1", got.UserID)
	})

	t.Run("expired but not yet swept by ttl", func(t *testing.T) {
		ddb.EXPECT().GetItem(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&dynamodb.GetItemOutput{Item: item(repoNow.Add(-time.Minute))}, nil)

		got, err := repo.Get(context.Background(), "hash-1")
		require.NoError(t, err)
		assert.Empty(t, got.UserID)
	})

	t.Run("missing", func(t *testing.T) {
		ddb.EXPECT().GetItem(gomock.Any(), gomock.Any(), gomock.Any()).Return(&dynamodb.GetItemOutput{}, nil)

		got, err := repo.Get(context.Background(), "nope")
		require.NoError(t, err)
		assert.Empty(t, got.Token)
	})
}

func TestLoginCodeDynamoRepository_Consume(t *testing.T) {
	ctrl := gomock.NewController(t)
	ddb := mocks.NewMockDynamoAPI(ctrl)
	repo := NewLoginCodeDynamoRepository(ddb, "")

	t.Run("matching hash deletes the code", func(t *testing.T) {
		ddb.EXPECT().DeleteItem(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
				assert.Equal(t, "#code_hash = :code_hash", aws.ToString(in.ConditionExpression))
				assert.Equal(t, avString("abc"), in.ExpressionAttributeValues[":code_hash"])
				return &dynamodb.DeleteItemOutput{}, nil
			})

		require.NoError(t, repo.Consume(context.Background(), "e@x.com", "abc"))
	})

	t.Run("already used", func(t *testing.T) {
		ddb.EXPECT().DeleteItem(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, conditionFailed())

		err := repo.Consume(context.Background(), "e@x.com", "abc")
		assert.ErrorIs(t, err, interfaces.ErrConditionFailed)
	})
}

func TestLoginCodeDynamoRepository_IncrementAttempts(t *testing.T) {
	ctrl := gomock.NewController(t)
	ddb := mocks.NewMockDynamoAPI(ctrl)
	repo := NewLoginCodeDynamoRepository(ddb, "")

	t.Run("returns the new count", func(t *testing.T) {
		ddb.EXPECT().UpdateItem(gomock.Any(), gomock.Any(), gomock.Any()).Return(&dynamodb.UpdateItemOutput{
			Attributes: map[string]types.AttributeValue{"attempts": &types.AttributeValueMemberN{Value: "3"}},
		}, nil)

		n, err := repo.IncrementAttempts(context.Background(), "e@x.com")
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("no pending code", func(t *testing.T) {
		ddb.EXPECT().UpdateItem(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, conditionFailed())

		_, err := repo.IncrementAttempts(context.Background(), "e@x.com")
		assert.ErrorIs(t, err, interfaces.ErrConditionFailed)
	})
}
