package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoAPI is the subset of *dynamodb.Client the repositories use.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

var _ DynamoAPI = (*dynamodb.Client)(nil)

// timeLayout is fixed width so stored timestamps sort lexicographically in range keys.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		t, _ = time.Parse(time.RFC3339Nano, s)
	}
	return t.UTC()
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

func parseTimePtr(s string) *time.Time {
	if s == "" {
		return nil
	}
	t := parseTime(s)
	return &t
}

func stringKey(name, value string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{name: &types.AttributeValueMemberS{Value: value}}
}

func avString(v string) types.AttributeValue { return &types.AttributeValueMemberS{Value: v} }

func avNumber(v int64) types.AttributeValue {
	return &types.AttributeValueMemberN{Value: strconv.FormatInt(v, 10)}
}

// getItem loads the item stored under key into out. It reports false when
// nothing is stored.
func getItem(ctx context.Context, ddb DynamoAPI, table string, key map[string]types.AttributeValue, out any) (bool, error) {
	res, err := ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(table),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return false, err
	}
	if len(res.Item) == 0 {
		return false, nil
	}
	if err := attributevalue.UnmarshalMap(res.Item, out); err != nil {
		return false, err
	}
	return true, nil
}

// queryAll follows LastEvaluatedKey until the query is exhausted.
func queryAll[T any](ctx context.Context, ddb DynamoAPI, in *dynamodb.QueryInput) ([]T, error) {
	var items []T
	p := dynamodb.NewQueryPaginator(ddb, in)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var batch []T
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, err
		}
		items = append(items, batch...)
	}
	return items, nil
}

func scanAll[T any](ctx context.Context, ddb DynamoAPI, in *dynamodb.ScanInput) ([]T, error) {
	var items []T
	p := dynamodb.NewScanPaginator(ddb, in)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var batch []T
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, err
		}
		items = append(items, batch...)
	}
	return items, nil
}

func isConditionFailed(err error) bool {
	var cfe *types.ConditionalCheckFailedException
	return errors.As(err, &cfe)
}

// cancelledAt reports which transaction items failed their condition.
func cancelledAt(err error) ([]bool, bool) {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		return nil, false
	}
	failed := make([]bool, len(tce.CancellationReasons))
	for i, r := range tce.CancellationReasons {
		failed[i] = aws.ToString(r.Code) == "ConditionalCheckFailed"
	}
	return failed, true
}

// filter accumulates an AND-ed FilterExpression with its placeholders.
type filter struct {
	parts  []string
	names  map[string]string
	values map[string]types.AttributeValue
}

func newFilter() *filter {
	return &filter{names: map[string]string{}, values: map[string]types.AttributeValue{}}
}

func (f *filter) name(attr string) string {
	n := "#" + attr
	f.names[n] = attr
	return n
}

func (f *filter) value(placeholder string, v types.AttributeValue) string {
	p := ":" + placeholder
	f.values[p] = v
	return p
}

func (f *filter) eq(attr string, v types.AttributeValue) *filter {
	f.parts = append(f.parts, f.name(attr)+" = "+f.value(attr, v))
	return f
}

func (f *filter) add(expr string) *filter {
	f.parts = append(f.parts, expr)
	return f
}

func (f *filter) expression() *string {
	if len(f.parts) == 0 {
		return nil
	}
	return aws.String(strings.Join(f.parts, " AND "))
}

func (f *filter) attributeNames(extra map[string]string) map[string]string {
	if len(f.names) == 0 && len(extra) == 0 {
		return nil
	}
	return mergeNames(f.names, extra)
}

func (f *filter) attributeValues(extra map[string]types.AttributeValue) map[string]types.AttributeValue {
	if len(f.values) == 0 && len(extra) == 0 {
		return nil
	}
	out := make(map[string]types.AttributeValue, len(f.values)+len(extra))
	for k, v := range f.values {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

func mergeNames(a, b map[string]string) map[string]string {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make(map[string]string, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
