package repository

import (
	"context"

	"trades_marketplace/internal/domain/entities"
	"trades_marketplace/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	DefaultUsersTableName       = "users"
	DefaultRoleChangesTableName = "role_changes"

	usersEmailIndex = "email-index"

	// emailLockPrefix keys the item that reserves an email inside the users table.
	emailLockPrefix = "email#"
)

type userItem struct {
	ID           string `dynamodbav:"id"`
	Email        string `dynamodbav:"email"`
	Name         string `dynamodbav:"name"`
	PasswordHash string `dynamodbav:"password_hash"`
	Role         string `dynamodbav:"role"`
	CreatedAt    string `dynamodbav:"created_at"`
	UpdatedAt    string `dynamodbav:"updated_at"`
}

type emailLockItem struct {
	ID     string `dynamodbav:"id"`
	UserID string `dynamodbav:"user_id"`
}

type roleChangeItem struct {
	ID        string `dynamodbav:"id"`
	UserID    string `dynamodbav:"user_id"`
	FromRole  string `dynamodbav:"from_role"`
	ToRole    string `dynamodbav:"to_role"`
	ChangedBy string `dynamodbav:"changed_by"`
	CreatedAt string `dynamodbav:"created_at"`
}

// UserDynamoRepository persists accounts in DynamoDB.
//
// Table requirements:
//   - users PK: id (string), GSI email-index (PK: email)
//   - role_changes PK: id (string)
//
// Email uniqueness is enforced by a lock item with id "email#<email>"
// written in the same transaction as the user.
type UserDynamoRepository struct {
	ddb              DynamoAPI
	tableName        string
	roleChangesTable string
}

var _ interfaces.IUserRepository = (*UserDynamoRepository)(nil)

func NewUserDynamoRepository(ddb DynamoAPI, tableName, roleChangesTable string) *UserDynamoRepository {
	if tableName == "" {
		tableName = DefaultUsersTableName
	}
	if roleChangesTable == "" {
		roleChangesTable = DefaultRoleChangesTableName
	}
	return &UserDynamoRepository{ddb: ddb, tableName: tableName, roleChangesTable: roleChangesTable}
}

func (r *UserDynamoRepository) Create(ctx context.Context, u entities.User) (entities.User, error) {
	userAV, err := attributevalue.MarshalMap(toUserItem(u))
	if err != nil {
		return entities.User{}, err
	}
	lockAV, err := attributevalue.MarshalMap(emailLockItem{ID: emailLockPrefix + u.Email, UserID: u.ID})
	if err != nil {
		return entities.User{}, err
	}

	notExists := aws.String("attribute_not_exists(#id)")
	names := map[string]string{"#id": "id"}
	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{TableName: aws.String(r.tableName), Item: userAV, ConditionExpression: notExists, ExpressionAttributeNames: names}},
			{Put: &types.Put{TableName: aws.String(r.tableName), Item: lockAV, ConditionExpression: notExists, ExpressionAttributeNames: names}},
		},
	})
	if err != nil {
		if _, ok := cancelledAt(err); ok {
			return entities.User{}, interfaces.ErrAlreadyExists
		}
		return entities.User{}, err
	}
	return u, nil
}

func (r *UserDynamoRepository) GetByID(ctx context.Context, id string) (entities.User, error) {
	var it userItem
	found, err := getItem(ctx, r.ddb, r.tableName, stringKey("id", id), &it)
	if err != nil || !found || it.Email == "" {
		return entities.User{}, err
	}
	return fromUserItem(it), nil
}

func (r *UserDynamoRepository) GetByEmail(ctx context.Context, email string) (entities.User, error) {
	res, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(usersEmailIndex),
		KeyConditionExpression: aws.String("#email = :email"),
		ExpressionAttributeNames: map[string]string{
			"#email": "email",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":email": avString(email),
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.User{}, err
	}
	if len(res.Items) == 0 {
		return entities.User{}, nil
	}
	var it userItem
	if err := attributevalue.UnmarshalMap(res.Items[0], &it); err != nil {
		return entities.User{}, err
	}
	return fromUserItem(it), nil
}

func (r *UserDynamoRepository) ChangeRole(ctx context.Context, change entities.RoleChange) (entities.User, error) {
	auditAV, err := attributevalue.MarshalMap(roleChangeItem{
		ID:        change.ID,
		UserID:    change.UserID,
		FromRole:  string(change.FromRole),
		ToRole:    string(change.ToRole),
		ChangedBy: change.ChangedBy,
		CreatedAt: formatTime(change.CreatedAt),
	})
	if err != nil {
		return entities.User{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Update: &types.Update{
				TableName:           aws.String(r.tableName),
				Key:                 stringKey("id", change.UserID),
				UpdateExpression:    aws.String("SET #role = :to_role, #updated_at = :updated_at"),
				ConditionExpression: aws.String("#role = :from_role"),
				ExpressionAttributeNames: map[string]string{
					"#role":       "role",
					"#updated_at": "updated_at",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":to_role":    avString(string(change.ToRole)),
					":from_role":  avString(string(change.FromRole)),
					":updated_at": avString(formatTime(change.CreatedAt)),
				},
			}},
			{Put: &types.Put{
				TableName:                aws.String(r.roleChangesTable),
				Item:                     auditAV,
				ConditionExpression:      aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{"#id": "id"},
			}},
		},
	})
	if err != nil {
		if failed, ok := cancelledAt(err); ok && len(failed) > 0 && failed[0] {
			return entities.User{}, interfaces.ErrStaleUser
		}
		return entities.User{}, err
	}
	return r.GetByID(ctx, change.UserID)
}

func toUserItem(u entities.User) userItem {
	return userItem{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		CreatedAt:    formatTime(u.CreatedAt),
		UpdatedAt:    formatTime(u.UpdatedAt),
	}
}

func fromUserItem(it userItem) entities.User {
	return entities.User{
		ID:           it.ID,
		Email:        it.Email,
		Name:         it.Name,
		PasswordHash: it.PasswordHash,
		Role:         entities.Role(it.Role),
		CreatedAt:    parseTime(it.CreatedAt),
		UpdatedAt:    parseTime(it.UpdatedAt),
	}
}
