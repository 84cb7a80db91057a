package repository

import (
	"context"
	"strconv"
	"time"

	"trades_marketplace/internal/domain/entities"
	"trades_marketplace/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	DefaultSessionsTableName   = "sessions"
	DefaultLoginCodesTableName = "login_codes"

	// ttlAttribute holds the epoch second DynamoDB TTL deletes the item at.
	ttlAttribute = "ttl"
)

type sessionItem struct {
	Token     string `dynamodbav:"token"`
	UserID    string `dynamodbav:"user_id"`
	CreatedAt string `dynamodbav:"created_at"`
	ExpiresAt string `dynamodbav:"expires_at"`
	TTL       int64  `dynamodbav:"ttl"`
}

// SessionDynamoRepository stores sessions keyed by token hash. DynamoDB TTL
// deletes are lazy, so reads also check expires_at.
type SessionDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
	now       func() time.Time
}

var _ interfaces.ISessionRepository = (*SessionDynamoRepository)(nil)

func NewSessionDynamoRepository(ddb DynamoAPI, tableName string) *SessionDynamoRepository {
	if tableName == "" {
		tableName = DefaultSessionsTableName
	}
	return &SessionDynamoRepository{ddb: ddb, tableName: tableName, now: time.Now}
}

func (r *SessionDynamoRepository) Create(ctx context.Context, s entities.Session) error {
	av, err := attributevalue.MarshalMap(sessionItem{
		Token:     s.Token,
		UserID:    s.UserID,
		CreatedAt: formatTime(s.CreatedAt),
		ExpiresAt: formatTime(s.ExpiresAt),
		TTL:       s.ExpiresAt.Unix(),
	})
	if err != nil {
		return err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	return err
}

func (r *SessionDynamoRepository) Get(ctx context.Context, tokenHash string) (entities.Session, error) {
	var it sessionItem
	found, err := getItem(ctx, r.ddb, r.tableName, stringKey("token", tokenHash), &it)
	if err != nil || !found {
		return entities.Session{}, err
	}
	s := entities.Session{
		Token:     it.Token,
		UserID:    it.UserID,
		CreatedAt: parseTime(it.CreatedAt),
		ExpiresAt: parseTime(it.ExpiresAt),
	}
	if !r.now().Before(s.ExpiresAt) {
		return entities.Session{}, nil
	}
	return s, nil
}

func (r *SessionDynamoRepository) Delete(ctx context.Context, tokenHash string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       stringKey("token", tokenHash),
	})
	return err
}

type loginCodeItem struct {
	Email     string `dynamodbav:"email"`
	CodeHash  string `dynamodbav:"code_hash"`
	Attempts  int    `dynamodbav:"attempts"`
	CreatedAt string `dynamodbav:"created_at"`
	ExpiresAt string `dynamodbav:"expires_at"`
	TTL       int64  `dynamodbav:"ttl"`
}

// LoginCodeDynamoRepository keeps at most one pending login code per email.
type LoginCodeDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
	now       func() time.Time
}

var _ interfaces.ILoginCodeRepository = (*LoginCodeDynamoRepository)(nil)

func NewLoginCodeDynamoRepository(ddb DynamoAPI, tableName string) *LoginCodeDynamoRepository {
	if tableName == "" {
		tableName = DefaultLoginCodesTableName
	}
	return &LoginCodeDynamoRepository{ddb: ddb, tableName: tableName, now: time.Now}
}

func (r *LoginCodeDynamoRepository) Put(ctx context.Context, c entities.LoginCode) error {
	av, err := attributevalue.MarshalMap(loginCodeItem{
		Email:     c.Email,
		CodeHash:  c.CodeHash,
		Attempts:  c.Attempts,
		CreatedAt: formatTime(c.CreatedAt),
		ExpiresAt: formatTime(c.ExpiresAt),
		TTL:       c.ExpiresAt.Unix(),
	})
	if err != nil {
		return err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	return err
}

func (r *LoginCodeDynamoRepository) Get(ctx context.Context, email string) (entities.LoginCode, error) {
	var it loginCodeItem
	found, err := getItem(ctx, r.ddb, r.tableName, stringKey("email", email), &it)
	if err != nil || !found {
		return entities.LoginCode{}, err
	}
	c := entities.LoginCode{
		Email:     it.Email,
		CodeHash:  it.CodeHash,
		Attempts:  it.Attempts,
		CreatedAt: parseTime(it.CreatedAt),
		ExpiresAt: parseTime(it.ExpiresAt),
	}
	if !r.now().Before(c.ExpiresAt) {
		return entities.LoginCode{}, nil
	}
	return c, nil
}

func (r *LoginCodeDynamoRepository) Consume(ctx context.Context, email, codeHash string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 stringKey("email", email),
		ConditionExpression: aws.String("#code_hash = :code_hash"),
		ExpressionAttributeNames: map[string]string{
			"#code_hash": "code_hash",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":code_hash": avString(codeHash),
		},
	})
	if isConditionFailed(err) {
		return interfaces.ErrConditionFailed
	}
	return err
}

func (r *LoginCodeDynamoRepository) IncrementAttempts(ctx context.Context, email string) (int, error) {
	res, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 stringKey("email", email),
		UpdateExpression:    aws.String("ADD #attempts :one"),
		ConditionExpression: aws.String("attribute_exists(#email)"),
		ExpressionAttributeNames: map[string]string{
			"#attempts": "attempts",
			"#email":    "email",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": avNumber(1),
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			return 0, interfaces.ErrConditionFailed
		}
		return 0, err
	}
	n, ok := res.Attributes["attempts"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, nil
	}
	attempts, err := strconv.Atoi(n.Value)
	if err != nil {
		return 0, err
	}
	return attempts, nil
}
