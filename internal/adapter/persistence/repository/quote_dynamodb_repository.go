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
	DefaultQuotesTableName = "quotes"

	quotesJobRequestIndex   = "job_request_id-index"
	quotesProfessionalIndex = "professional_id-index"
	quotesCustomerIndex     = "customer_id-index"

	// activeQuotePrefix keys the item that reserves a professional's single
	// active quote on a job inside the quotes table.
	activeQuotePrefix = "active#"
)

type activeQuoteItem struct {
	ID      string `dynamodbav:"id"`
	QuoteID string `dynamodbav:"quote_id"`
}

func activeQuoteKey(jobRequestID, professionalID string) string {
	return activeQuotePrefix + jobRequestID + "#" + professionalID
}

type quoteItem struct {
	ID                string `dynamodbav:"id"`
	JobRequestID      string `dynamodbav:"job_request_id"`
	ProfessionalID    string `dynamodbav:"professional_id"`
	CustomerID        string `dynamodbav:"customer_id"`
	Amount            int64  `dynamodbav:"amount"`
	Message           string `dynamodbav:"message,omitempty"`
	EstimatedDuration string `dynamodbav:"estimated_duration,omitempty"`
	MaterialsCost     int64  `dynamodbav:"materials_cost"`
	LaborCost         int64  `dynamodbav:"labor_cost"`
	IncludesMaterials bool   `dynamodbav:"includes_materials"`
	ExpiresAt         string `dynamodbav:"expires_at,omitempty"`
	Status            string `dynamodbav:"status"`
	AcceptedAt        string `dynamodbav:"accepted_at,omitempty"`
	DeclinedAt        string `dynamodbav:"declined_at,omitempty"`
	WithdrawnAt       string `dynamodbav:"withdrawn_at,omitempty"`
	CreatedAt         string `dynamodbav:"created_at"`
	UpdatedAt         string `dynamodbav:"updated_at"`
}

// QuoteDynamoRepository persists Quote entities in DynamoDB. Writes that
// touch the owning job request go through TransactWriteItems against the
// job requests table.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: job_request_id-index (PK: job_request_id, SK: created_at)
//   - GSI: professional_id-index (PK: professional_id, SK: created_at)
//   - GSI: customer_id-index (PK: customer_id, SK: created_at)
//
// A pending or accepted quote also owns an "active#<job>#<professional>"
// item. It carries no index attributes, so it never shows up in queries.
type QuoteDynamoRepository struct {
	ddb           DynamoAPI
	tableName     string
	jobsTableName string
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb DynamoAPI, tableName, jobsTableName string) *QuoteDynamoRepository {
	if tableName == "" {
		tableName = DefaultQuotesTableName
	}
	if jobsTableName == "" {
		jobsTableName = DefaultJobRequestsTableName
	}
	return &QuoteDynamoRepository{ddb: ddb, tableName: tableName, jobsTableName: jobsTableName}
}

func (r *QuoteDynamoRepository) CreateWithJobRequest(ctx context.Context, q entities.Quote, job entities.JobRequest, expectedJobVersion int64) (entities.Quote, entities.JobRequest, error) {
	av, err := attributevalue.MarshalMap(toQuoteItem(q))
	if err != nil {
		return entities.Quote{}, entities.JobRequest{}, err
	}
	lock, err := attributevalue.MarshalMap(activeQuoteItem{
		ID:      activeQuoteKey(q.JobRequestID, q.ProfessionalID),
		QuoteID: q.ID,
	})
	if err != nil {
		return entities.Quote{}, entities.JobRequest{}, err
	}
	jobPut, next, err := jobRequestPut(r.jobsTableName, job, expectedJobVersion)
	if err != nil {
		return entities.Quote{}, entities.JobRequest{}, err
	}

	notExists := func(item map[string]types.AttributeValue) *types.Put {
		return &types.Put{
			TableName:           aws.String(r.tableName),
			Item:                item,
			ConditionExpression: aws.String("attribute_not_exists(#id)"),
			ExpressionAttributeNames: map[string]string{
				"#id": "id",
			},
		}
	}
	err = r.transact(ctx,
		[]types.TransactWriteItem{{Put: notExists(av)}, {Put: jobPut}, {Put: notExists(lock)}},
		[]error{interfaces.ErrAlreadyExists, interfaces.ErrStaleJobRequest, interfaces.ErrActiveQuoteExists},
	)
	if err != nil {
		return entities.Quote{}, entities.JobRequest{}, err
	}
	return q, next, nil
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	var it quoteItem
	found, err := getItem(ctx, r.ddb, r.tableName, stringKey("id", id), &it)
	if err != nil || !found {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

func (r *QuoteDynamoRepository) List(ctx context.Context, f interfaces.QuoteFilter) ([]entities.Quote, error) {
	fl := newFilter()
	if f.Status != "" {
		fl.eq("status", avString(string(f.Status)))
	}

	// The most selective key becomes the index partition, the others filter.
	var index, keyAttr, keyValue string
	switch {
	case f.JobRequestID != "":
		index, keyAttr, keyValue = quotesJobRequestIndex, "job_request_id", f.JobRequestID
		if f.ProfessionalID != "" {
			fl.eq("professional_id", avString(f.ProfessionalID))
		}
		if f.CustomerID != "" {
			fl.eq("customer_id", avString(f.CustomerID))
		}
	case f.ProfessionalID != "":
		index, keyAttr, keyValue = quotesProfessionalIndex, "professional_id", f.ProfessionalID
		if f.CustomerID != "" {
			fl.eq("customer_id", avString(f.CustomerID))
		}
	case f.CustomerID != "":
		index, keyAttr, keyValue = quotesCustomerIndex, "customer_id", f.CustomerID
	}

	var (
		items []quoteItem
		err   error
	)
	if index == "" {
		fl.add(fmt.Sprintf("attribute_exists(%s)", fl.name("job_request_id")))
		items, err = scanAll[quoteItem](ctx, r.ddb, &dynamodb.ScanInput{
			TableName:                 aws.String(r.tableName),
			FilterExpression:          fl.expression(),
			ExpressionAttributeNames:  fl.attributeNames(nil),
			ExpressionAttributeValues: fl.attributeValues(nil),
		})
	} else {
		items, err = queryAll[quoteItem](ctx, r.ddb, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			IndexName:                 aws.String(index),
			KeyConditionExpression:    aws.String(fmt.Sprintf("#pk_%s = :pk", keyAttr)),
			FilterExpression:          fl.expression(),
			ExpressionAttributeNames:  fl.attributeNames(map[string]string{"#pk_" + keyAttr: keyAttr}),
			ExpressionAttributeValues: fl.attributeValues(map[string]types.AttributeValue{":pk": avString(keyValue)}),
			ScanIndexForward:          aws.Bool(false),
		})
	}
	if err != nil {
		return nil, err
	}
	return fromQuoteItems(items), nil
}

func (r *QuoteDynamoRepository) ListByJobRequestID(ctx context.Context, jobRequestID string) ([]entities.Quote, error) {
	return r.List(ctx, interfaces.QuoteFilter{JobRequestID: jobRequestID})
}

func (r *QuoteDynamoRepository) Update(ctx context.Context, q, expected entities.Quote) (entities.Quote, error) {
	put, err := r.quotePut(q, expected)
	if err != nil {
		return entities.Quote{}, err
	}
	if release := r.releaseActive(q, expected); release != nil {
		err := r.transact(ctx,
			[]types.TransactWriteItem{{Put: put}, *release},
			[]error{interfaces.ErrStaleQuote},
		)
		if err != nil {
			return entities.Quote{}, err
		}
		return q, nil
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
			return entities.Quote{}, interfaces.ErrStaleQuote
		}
		return entities.Quote{}, err
	}
	return q, nil
}

func (r *QuoteDynamoRepository) UpdateWithJobRequest(ctx context.Context, q, expected entities.Quote, job entities.JobRequest, expectedJobVersion int64) (entities.Quote, entities.JobRequest, error) {
	quotePut, err := r.quotePut(q, expected)
	if err != nil {
		return entities.Quote{}, entities.JobRequest{}, err
	}
	jobPut, next, err := jobRequestPut(r.jobsTableName, job, expectedJobVersion)
	if err != nil {
		return entities.Quote{}, entities.JobRequest{}, err
	}
	items := []types.TransactWriteItem{{Put: quotePut}, {Put: jobPut}}
	if release := r.releaseActive(q, expected); release != nil {
		items = append(items, *release)
	}
	err = r.transact(ctx, items, []error{interfaces.ErrStaleQuote, interfaces.ErrStaleJobRequest})
	if err != nil {
		return entities.Quote{}, entities.JobRequest{}, err
	}
	return q, next, nil
}

// quotePut replaces q while the stored document still has the status and
// updated_at of expected.
func (r *QuoteDynamoRepository) quotePut(q, expected entities.Quote) (*types.Put, error) {
	av, err := attributevalue.MarshalMap(toQuoteItem(q))
	if err != nil {
		return nil, err
	}
	return &types.Put{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#id) AND #status = :expected_status AND #updated_at = :expected_updated_at"),
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#status":     "status",
			"#updated_at": "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected_status":     avString(string(expected.Status)),
			":expected_updated_at": avString(formatTime(expected.UpdatedAt)),
		},
	}, nil
}

// releaseActive deletes the active-quote reservation when q leaves the
// active statuses.
func (r *QuoteDynamoRepository) releaseActive(q, expected entities.Quote) *types.TransactWriteItem {
	if !expected.Status.Active() || q.Status.Active() {
		return nil
	}
	return &types.TransactWriteItem{Delete: &types.Delete{
		TableName: aws.String(r.tableName),
		Key:       stringKey("id", activeQuoteKey(q.JobRequestID, q.ProfessionalID)),
	}}
}

// transact writes items atomically. A failed condition on items[i] yields
// errs[i] when one is given.
func (r *QuoteDynamoRepository) transact(ctx context.Context, items []types.TransactWriteItem, errs []error) error {
	_, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err == nil {
		return nil
	}
	failed, ok := cancelledAt(err)
	if !ok {
		return err
	}
	for i, f := range failed {
		if f && i < len(errs) && errs[i] != nil {
			return errs[i]
		}
	}
	return err
}

func toQuoteItem(q entities.Quote) quoteItem {
	return quoteItem{
		ID:                q.ID,
		JobRequestID:      q.JobRequestID,
		ProfessionalID:    q.ProfessionalID,
		CustomerID:        q.CustomerID,
		Amount:            q.Amount,
		Message:           q.Message,
		EstimatedDuration: q.EstimatedDuration,
		MaterialsCost:     q.MaterialsCost,
		LaborCost:         q.LaborCost,
		IncludesMaterials: q.IncludesMaterials,
		ExpiresAt:         formatTime(q.ExpiresAt),
		Status:            string(q.Status),
		AcceptedAt:        formatTimePtr(q.AcceptedAt),
		DeclinedAt:        formatTimePtr(q.DeclinedAt),
		WithdrawnAt:       formatTimePtr(q.WithdrawnAt),
		CreatedAt:         formatTime(q.CreatedAt),
		UpdatedAt:         formatTime(q.UpdatedAt),
	}
}

func fromQuoteItem(it quoteItem) entities.Quote {
	return entities.Quote{
		ID:                it.ID,
		JobRequestID:      it.JobRequestID,
		ProfessionalID:    it.ProfessionalID,
		CustomerID:        it.CustomerID,
		Amount:            it.Amount,
		Message:           it.Message,
		EstimatedDuration: it.EstimatedDuration,
		MaterialsCost:     it.MaterialsCost,
		LaborCost:         it.LaborCost,
		IncludesMaterials: it.IncludesMaterials,
		ExpiresAt:         parseTime(it.ExpiresAt),
		Status:            entities.QuoteStatus(it.Status),
		AcceptedAt:        parseTimePtr(it.AcceptedAt),
		DeclinedAt:        parseTimePtr(it.DeclinedAt),
		WithdrawnAt:       parseTimePtr(it.WithdrawnAt),
		CreatedAt:         parseTime(it.CreatedAt),
		UpdatedAt:         parseTime(it.UpdatedAt),
	}
}

func fromQuoteItems(items []quoteItem) []entities.Quote {
	out := make([]entities.Quote, 0, len(items))
	for _, it := range items {
		out = append(out, fromQuoteItem(it))
	}
	return out
}
