package repository

import (
	"context"
	"fmt"

	"trades_marketplace/internal/domain/entities"
	"trades_marketplace/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	DefaultJobRequestsTableName = "job_requests"

	jobRequestsStatusIndex       = "status-index"
	jobRequestsCustomerIndex     = "customer_id-index"
	jobRequestsContactEmailIndex = "contact_email-index"
)

// customer_id and contact_email are omitted when empty so the matching
// indexes stay sparse.
type jobRequestItem struct {
	ID                     string `dynamodbav:"id"`
	CustomerID             string `dynamodbav:"customer_id,omitempty"`
	Category               string `dynamodbav:"category"`
	Subcategory            string `dynamodbav:"subcategory,omitempty"`
	Title                  string `dynamodbav:"title"`
	Description            string `dynamodbav:"description"`
	Postcode               string `dynamodbav:"postcode"`
	Address                string `dynamodbav:"address,omitempty"`
	Priority               string `dynamodbav:"priority"`
	BudgetMin              int64  `dynamodbav:"budget_min"`
	BudgetMax              int64  `dynamodbav:"budget_max"`
	ContactEmail           string `dynamodbav:"contact_email,omitempty"`
	ContactPhone           string `dynamodbav:"contact_phone,omitempty"`
	ContactName            string `dynamodbav:"contact_name,omitempty"`
	Status                 string `dynamodbav:"status"`
	QuotesCount            int    `dynamodbav:"quotes_count"`
	MaxQuotes              int    `dynamodbav:"max_quotes"`
	AcceptedQuoteID        string `dynamodbav:"accepted_quote_id,omitempty"`
	AssignedProfessionalID string `dynamodbav:"assigned_professional_id,omitempty"`
	Version                int64  `dynamodbav:"version"`
	PostedAt               string `dynamodbav:"posted_at"`
	UpdatedAt              string `dynamodbav:"updated_at"`
	CompletedAt            string `dynamodbav:"completed_at,omitempty"`
	CancelledAt            string `dynamodbav:"cancelled_at,omitempty"`
}

// JobRequestDynamoRepository persists JobRequest entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: status-index (PK: status, SK: posted_at)
//   - GSI: customer_id-index (PK: customer_id, SK: posted_at)
//   - GSI: contact_email-index (PK: contact_email)
type JobRequestDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IJobRequestRepository = (*JobRequestDynamoRepository)(nil)

func NewJobRequestDynamoRepository(ddb DynamoAPI, tableName string) *JobRequestDynamoRepository {
	if tableName == "" {
		tableName = DefaultJobRequestsTableName
	}
	return &JobRequestDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *JobRequestDynamoRepository) Create(ctx context.Context, j entities.JobRequest) (entities.JobRequest, error) {
	av, err := attributevalue.MarshalMap(toJobRequestItem(j))
	if err != nil {
		return entities.JobRequest{}, err
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
		if isConditionFailed(err) {
			return entities.JobRequest{}, interfaces.ErrAlreadyExists
		}
		return entities.JobRequest{}, err
	}
	return j, nil
}

func (r *JobRequestDynamoRepository) GetByID(ctx context.Context, id string) (entities.JobRequest, error) {
	var it jobRequestItem
	found, err := getItem(ctx, r.ddb, r.tableName, stringKey("id", id), &it)
	if err != nil || !found {
		return entities.JobRequest{}, err
	}
	return fromJobRequestItem(it), nil
}

// List picks the narrowest index for the filter and applies the remaining
// criteria as a FilterExpression.
func (r *JobRequestDynamoRepository) List(ctx context.Context, f interfaces.JobRequestFilter) ([]entities.JobRequest, error) {
	fl := newFilter()
	if f.Category != "" {
		fl.eq("category", avString(f.Category))
	}
	if f.Subcategory != "" {
		fl.eq("subcategory", avString(f.Subcategory))
	}
	if f.Priority != "" {
		fl.eq("priority", avString(string(f.Priority)))
	}
	if f.Postcode != "" {
		fl.add(fmt.Sprintf("begins_with(%s, %s)", fl.name("postcode"), fl.value("postcode", avString(f.Postcode))))
	}
	if f.BudgetMin > 0 {
		// A job without a ceiling matches any minimum.
		fl.add(fmt.Sprintf("(%s >= %s OR %s = %s)",
			fl.name("budget_max"), fl.value("filter_budget_min", avNumber(f.BudgetMin)),
			fl.name("budget_max"), fl.value("zero", avNumber(0)),
		))
	}
	if f.BudgetMax > 0 {
		fl.add(fmt.Sprintf("%s <= %s", fl.name("budget_min"), fl.value("filter_budget_max", avNumber(f.BudgetMax))))
	}

	var (
		items []jobRequestItem
		err   error
	)
	switch {
	case f.CustomerID != "":
		if f.Status != "" {
			fl.eq("status", avString(string(f.Status)))
		} else if !f.IncludeDrafts {
			fl.add(fmt.Sprintf("%s <> %s", fl.name("status"), fl.value("draft", avString(string(entities.JobRequestStatusDraft)))))
		}
		items, err = queryAll[jobRequestItem](ctx, r.ddb, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			IndexName:                 aws.String(jobRequestsCustomerIndex),
			KeyConditionExpression:    aws.String("#customer_id = :customer_id"),
			FilterExpression:          fl.expression(),
			ExpressionAttributeNames:  fl.attributeNames(map[string]string{"#customer_id": "customer_id"}),
			ExpressionAttributeValues: fl.attributeValues(map[string]types.AttributeValue{":customer_id": avString(f.CustomerID)}),
			ScanIndexForward:          aws.Bool(false),
		})
	case f.Status != "":
		items, err = queryAll[jobRequestItem](ctx, r.ddb, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			IndexName:                 aws.String(jobRequestsStatusIndex),
			KeyConditionExpression:    aws.String("#status = :status"),
			FilterExpression:          fl.expression(),
			ExpressionAttributeNames:  fl.attributeNames(map[string]string{"#status": "status"}),
			ExpressionAttributeValues: fl.attributeValues(map[string]types.AttributeValue{":status": avString(string(f.Status))}),
			ScanIndexForward:          aws.Bool(false),
		})
	default:
		if !f.IncludeDrafts {
			fl.add(fmt.Sprintf("%s <> %s", fl.name("status"), fl.value("draft", avString(string(entities.JobRequestStatusDraft)))))
		}
		items, err = scanAll[jobRequestItem](ctx, r.ddb, &dynamodb.ScanInput{
			TableName:                 aws.String(r.tableName),
			FilterExpression:          fl.expression(),
			ExpressionAttributeNames:  fl.attributeNames(nil),
			ExpressionAttributeValues: fl.attributeValues(nil),
		})
	}
	if err != nil {
		return nil, err
	}
	return fromJobRequestItems(items), nil
}

func (r *JobRequestDynamoRepository) ListDraftsByContactEmail(ctx context.Context, email string) ([]entities.JobRequest, error) {
	items, err := queryAll[jobRequestItem](ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(jobRequestsContactEmailIndex),
		KeyConditionExpression: aws.String("#contact_email = :email"),
		FilterExpression:       aws.String("#status = :draft AND attribute_not_exists(#customer_id)"),
		ExpressionAttributeNames: map[string]string{
			"#contact_email": "contact_email",
			"#status":        "status",
			"#customer_id":   "customer_id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":email": avString(email),
			":draft": avString(string(entities.JobRequestStatusDraft)),
		},
	})
	if err != nil {
		return nil, err
	}
	return fromJobRequestItems(items), nil
}

func (r *JobRequestDynamoRepository) Save(ctx context.Context, j entities.JobRequest, expectedVersion int64) (entities.JobRequest, error) {
	put, next, err := jobRequestPut(r.tableName, j, expectedVersion)
	if err != nil {
		return entities.JobRequest{}, err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 put.TableName,
		Item:                      put.Item,
		ConditionExpression:       put.ConditionExpression,
		ExpressionAttributeNames:  put.ExpressionAttributeNames,
		ExpressionAttributeValues: put.ExpressionAttributeValues,
	})
	if err != nil {
		if isConditionFailed(err) {
			return entities.JobRequest{}, interfaces.ErrStaleJobRequest
		}
		return entities.JobRequest{}, err
	}
	return next, nil
}

// jobRequestPut builds the versioned replace of j shared by Save and the
// quote transactions. It returns the job as it will be stored.
func jobRequestPut(table string, j entities.JobRequest, expectedVersion int64) (*types.Put, entities.JobRequest, error) {
	j.Version = expectedVersion + 1
	av, err := attributevalue.MarshalMap(toJobRequestItem(j))
	if err != nil {
		return nil, entities.JobRequest{}, err
	}
	return &types.Put{
		TableName:           aws.String(table),
		Item:                av,
		ConditionExpression: aws.String("#version = :expected_version"),
		ExpressionAttributeNames: map[string]string{
			"#version": "version",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected_version": avNumber(expectedVersion),
		},
	}, j, nil
}

func toJobRequestItem(j entities.JobRequest) jobRequestItem {
	return jobRequestItem{
		ID:                     j.ID,
		CustomerID:             j.CustomerID,
		Category:               j.Category,
		Subcategory:            j.Subcategory,
		Title:                  j.Title,
		Description:            j.Description,
		Postcode:               j.Postcode,
		Address:                j.Address,
		Priority:               string(j.Priority),
		BudgetMin:              j.BudgetMin,
		BudgetMax:              j.BudgetMax,
		ContactEmail:           j.ContactEmail,
		ContactPhone:           j.ContactPhone,
		ContactName:            j.ContactName,
		Status:                 string(j.Status),
		QuotesCount:            j.QuotesCount,
		MaxQuotes:              j.MaxQuotes,
		AcceptedQuoteID:        j.AcceptedQuoteID,
		AssignedProfessionalID: j.AssignedProfessionalID,
		Version:                j.Version,
		PostedAt:               formatTime(j.PostedAt),
		UpdatedAt:              formatTime(j.UpdatedAt),
		CompletedAt:            formatTimePtr(j.CompletedAt),
		CancelledAt:            formatTimePtr(j.CancelledAt),
	}
}

func fromJobRequestItem(it jobRequestItem) entities.JobRequest {
	return entities.JobRequest{
		ID:                     it.ID,
		CustomerID:             it.CustomerID,
		Category:               it.Category,
		Subcategory:            it.Subcategory,
		Title:                  it.Title,
		Description:            it.Description,
		Postcode:               it.Postcode,
		Address:                it.Address,
		Priority:               entities.JobPriority(it.Priority),
		BudgetMin:              it.BudgetMin,
		BudgetMax:              it.BudgetMax,
		ContactEmail:           it.ContactEmail,
		ContactPhone:           it.ContactPhone,
		ContactName:            it.ContactName,
		Status:                 entities.JobRequestStatus(it.Status),
		QuotesCount:            it.QuotesCount,
		MaxQuotes:              it.MaxQuotes,
		AcceptedQuoteID:        it.AcceptedQuoteID,
		AssignedProfessionalID: it.AssignedProfessionalID,
		Version:                it.Version,
		PostedAt:               parseTime(it.PostedAt),
		UpdatedAt:              parseTime(it.UpdatedAt),
		CompletedAt:            parseTimePtr(it.CompletedAt),
		CancelledAt:            parseTimePtr(it.CancelledAt),
	}
}

func fromJobRequestItems(items []jobRequestItem) []entities.JobRequest {
	out := make([]entities.JobRequest, 0, len(items))
	for _, it := range items {
		out = append(out, fromJobRequestItem(it))
	}
	return out
}
