package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// Tables names every table the service uses.
type Tables struct {
	JobRequests string
	Quotes      string
	Users       string
	RoleChanges string
	Sessions    string
	LoginCodes  string
}

// WithDefaults fills blank names with the Default*TableName constants.
func (t Tables) WithDefaults() Tables {
	def := func(v, d string) string {
		if v == "" {
			return d
		}
		return v
	}
	return Tables{
		JobRequests: def(t.JobRequests, DefaultJobRequestsTableName),
		Quotes:      def(t.Quotes, DefaultQuotesTableName),
		Users:       def(t.Users, DefaultUsersTableName),
		RoleChanges: def(t.RoleChanges, DefaultRoleChangesTableName),
		Sessions:    def(t.Sessions, DefaultSessionsTableName),
		LoginCodes:  def(t.LoginCodes, DefaultLoginCodesTableName),
	}
}

// TableAdminAPI is the subset of *dynamodb.Client used to provision tables.
type TableAdminAPI interface {
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	UpdateTimeToLive(ctx context.Context, params *dynamodb.UpdateTimeToLiveInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateTimeToLiveOutput, error)
}

var _ TableAdminAPI = (*dynamodb.Client)(nil)

const tableWaitTimeout = 2 * time.Minute

// EnsureTables creates any missing table with its indexes and enables TTL
// on the expiring tables. Existing tables are left untouched.
func EnsureTables(ctx context.Context, api TableAdminAPI, t Tables, logger *zap.Logger) error {
	t = t.WithDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}

	defs := []*dynamodb.CreateTableInput{
		tableDef(t.JobRequests, "id",
			gsi(jobRequestsStatusIndex, "status", "posted_at"),
			gsi(jobRequestsCustomerIndex, "customer_id", "posted_at"),
			gsi(jobRequestsContactEmailIndex, "contact_email", ""),
		),
		tableDef(t.Quotes, "id",
			gsi(quotesJobRequestIndex, "job_request_id", "created_at"),
			gsi(quotesProfessionalIndex, "professional_id", "created_at"),
			gsi(quotesCustomerIndex, "customer_id", "created_at"),
		),
		tableDef(t.Users, "id", gsi(usersEmailIndex, "email", "")),
		tableDef(t.RoleChanges, "id"),
		tableDef(t.Sessions, "token"),
		tableDef(t.LoginCodes, "email"),
	}

	for _, def := range defs {
		name := aws.ToString(def.TableName)
		_, err := api.CreateTable(ctx, def)
		if err != nil {
			var inUse *types.ResourceInUseException
			if errors.As(err, &inUse) {
				logger.Info("table already exists", zap.String("table", name))
				continue
			}
			return fmt.Errorf("create table %s: %w", name, err)
		}
		waiter := dynamodb.NewTableExistsWaiter(api)
		if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: def.TableName}, tableWaitTimeout); err != nil {
			return fmt.Errorf("wait for table %s: %w", name, err)
		}
		logger.Info("table created", zap.String("table", name))
	}

	for _, name := range []string{t.Sessions, t.LoginCodes} {
		_, err := api.UpdateTimeToLive(ctx, &dynamodb.UpdateTimeToLiveInput{
			TableName: aws.String(name),
			TimeToLiveSpecification: &types.TimeToLiveSpecification{
				AttributeName: aws.String(ttlAttribute),
				Enabled:       aws.Bool(true),
			},
		})
		if err != nil {
			// Already enabled, or unsupported by DynamoDB Local.
			logger.Warn("enable ttl failed", zap.String("table", name), zap.Error(err))
		}
	}
	return nil
}

type indexDef struct {
	name, hash, sort string
}

func gsi(name, hash, sort string) indexDef {
	return indexDef{name: name, hash: hash, sort: sort}
}

func tableDef(name, pk string, indexes ...indexDef) *dynamodb.CreateTableInput {
	attrs := map[string]bool{pk: true}
	in := &dynamodb.CreateTableInput{
		TableName:   aws.String(name),
		BillingMode: types.BillingModePayPerRequest,
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(pk), KeyType: types.KeyTypeHash},
		},
	}
	for _, idx := range indexes {
		keys := []types.KeySchemaElement{{AttributeName: aws.String(idx.hash), KeyType: types.KeyTypeHash}}
		attrs[idx.hash] = true
		if idx.sort != "" {
			keys = append(keys, types.KeySchemaElement{AttributeName: aws.String(idx.sort), KeyType: types.KeyTypeRange})
			attrs[idx.sort] = true
		}
		in.GlobalSecondaryIndexes = append(in.GlobalSecondaryIndexes, types.GlobalSecondaryIndex{
			IndexName:  aws.String(idx.name),
			KeySchema:  keys,
			Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
		})
	}
	// Keep the definitions in key-schema order for stable requests.
	seen := map[string]bool{}
	add := func(a string) {
		if !seen[a] && attrs[a] {
			seen[a] = true
			in.AttributeDefinitions = append(in.AttributeDefinitions, types.AttributeDefinition{
				AttributeName: aws.String(a),
				AttributeType: types.ScalarAttributeTypeS,
			})
		}
	}
	add(pk)
	for _, idx := range indexes {
		add(idx.hash)
		add(idx.sort)
	}
	return in
}
