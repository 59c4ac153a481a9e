package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/vendoradmin/internal/keys"
)

// DynamoDBAPI is the subset of *dynamodb.Client used by DynamoDB.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// DynamoDB is a Store backed by Amazon DynamoDB.
//
// Each collection lives in its own table keyed by "id". Sub-collection records
// share Config.SubItemTable, keyed by ("pk", "id") where pk identifies the
// parent and sub-collection.
type DynamoDB struct {
	client DynamoDBAPI
	config Config
}

// NewDynamoDB creates a new DynamoDB store.
func NewDynamoDB(client DynamoDBAPI, config Config) *DynamoDB {
	config.validate()
	return &DynamoDB{
		client: client,
		config: config,
	}
}

// Config returns the store's effective configuration.
func (d *DynamoDB) Config() Config {
	return d.config
}

// List implements Store. Filtered lists use a configured GSI when one exists.
func (d *DynamoDB) List(ctx context.Context, collection string, filter *Filter) ([]Record, error) {
	table := d.config.TableName(collection)

	if filter == nil {
		return d.scan(ctx, &dynamodb.ScanInput{TableName: aws.String(table)})
	}

	names := map[string]string{"#f": filter.Field}
	values := map[string]types.AttributeValue{
		":v": &types.AttributeValueMemberS{Value: filter.Value},
	}

	if index := d.config.indexFor(collection, filter.Field); index != "" {
		return d.query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(table),
			IndexName:                 aws.String(index),
			KeyConditionExpression:    aws.String("#f = :v"),
			ExpressionAttributeNames:  names,
			ExpressionAttributeValues: values,
		})
	}

	return d.scan(ctx, &dynamodb.ScanInput{
		TableName:                 aws.String(table),
		FilterExpression:          aws.String("#f = :v"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
}

// Get implements Store.
func (d *DynamoDB) Get(ctx context.Context, collection, id string) (Record, error) {
	table := d.config.TableName(collection)
	return d.get(ctx, table, idKey(id))
}

// Create implements Store.
func (d *DynamoDB) Create(ctx context.Context, collection string, fields Fields) (string, error) {
	table := d.config.TableName(collection)
	id := keys.NewID()
	if err := d.put(ctx, table, idKey(id), fields); err != nil {
		return "", err
	}
	return id, nil
}

// Update implements Store.
func (d *DynamoDB) Update(ctx context.Context, collection, id string, fields Fields) error {
	return d.update(ctx, d.config.TableName(collection), idKey(id), fields)
}

// Delete implements Store.
func (d *DynamoDB) Delete(ctx context.Context, collection, id string) error {
	return d.delete(ctx, d.config.TableName(collection), idKey(id))
}

// ListSub implements Store.
func (d *DynamoDB) ListSub(ctx context.Context, parentCollection, parentID, sub string) ([]Record, error) {
	pk := keys.SubCollectionPK(parentCollection, parentID, sub)
	return d.query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(d.config.SubItemTable),
		KeyConditionExpression: aws.String("pk = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: pk},
		},
		ScanIndexForward: aws.Bool(true),
	})
}

// GetSub implements Store.
func (d *DynamoDB) GetSub(ctx context.Context, parentCollection, parentID, sub, id string) (Record, error) {
	return d.get(ctx, d.config.SubItemTable, subKey(parentCollection, parentID, sub, id))
}

// CreateSub implements Store.
func (d *DynamoDB) CreateSub(ctx context.Context, parentCollection, parentID, sub string, fields Fields) (string, error) {
	id := keys.NewID()
	if err := d.put(ctx, d.config.SubItemTable, subKey(parentCollection, parentID, sub, id), fields); err != nil {
		return "", err
	}
	return id, nil
}

// UpdateSub implements Store.
func (d *DynamoDB) UpdateSub(ctx context.Context, parentCollection, parentID, sub, id string, fields Fields) error {
	return d.update(ctx, d.config.SubItemTable, subKey(parentCollection, parentID, sub, id), fields)
}

// DeleteSub implements Store.
func (d *DynamoDB) DeleteSub(ctx context.Context, parentCollection, parentID, sub, id string) error {
	return d.delete(ctx, d.config.SubItemTable, subKey(parentCollection, parentID, sub, id))
}

func (d *DynamoDB) get(ctx context.Context, table string, key map[string]types.AttributeValue) (Record, error) {
	result, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(table),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return Record{}, mapError(err, nil, "get", table)
	}
	if result.Item == nil {
		return Record{}, ErrNotFound
	}
	return DecodeItem(result.Item)
}

func (d *DynamoDB) put(ctx context.Context, table string, key map[string]types.AttributeValue, fields Fields) error {
	item, err := encodeFields(fields)
	if err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339)
	for k, v := range key {
		item[k] = v
	}
	item[FieldCreatedAt] = &types.AttributeValueMemberS{Value: now}
	item[FieldUpdatedAt] = &types.AttributeValueMemberS{Value: now}

	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	return mapError(err, ErrAlreadyExists, "put", table)
}

func (d *DynamoDB) update(ctx context.Context, table string, key map[string]types.AttributeValue, fields Fields) error {
	expr, names, values, err := buildUpdate(fields, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}

	_, err = d.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(table),
		Key:                       key,
		UpdateExpression:          aws.String(expr),
		ConditionExpression:       aws.String("attribute_exists(id)"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	return mapError(err, ErrNotFound, "update", table)
}

func (d *DynamoDB) delete(ctx context.Context, table string, key map[string]types.AttributeValue) error {
	_, err := d.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(table),
		Key:                 key,
		ConditionExpression: aws.String("attribute_exists(id)"),
	})
	return mapError(err, ErrNotFound, "delete", table)
}

func (d *DynamoDB) query(ctx context.Context, input *dynamodb.QueryInput) ([]Record, error) {
	var records []Record
	paginator := dynamodb.NewQueryPaginator(d.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, mapError(err, nil, "query", aws.ToString(input.TableName))
		}
		for _, raw := range page.Items {
			rec, err := DecodeItem(raw)
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
	}
	sortRecords(records)
	return records, nil
}

func (d *DynamoDB) scan(ctx context.Context, input *dynamodb.ScanInput) ([]Record, error) {
	var records []Record
	paginator := dynamodb.NewScanPaginator(d.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, mapError(err, nil, "scan", aws.ToString(input.TableName))
		}
		for _, raw := range page.Items {
			rec, err := DecodeItem(raw)
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
	}
	sortRecords(records)
	return records, nil
}

func idKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		FieldID: &types.AttributeValueMemberS{Value: id},
	}
}

func subKey(parentCollection, parentID, sub, id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		fieldPK: &types.AttributeValueMemberS{Value: keys.SubCollectionPK(parentCollection, parentID, sub)},
		FieldID: &types.AttributeValueMemberS{Value: id},
	}
}

// mapError maps DynamoDB errors to store errors.
// A failed condition maps to condErr; everything else except context
// cancellation is wrapped with ErrUnavailable.
func mapError(err, condErr error, op, table string) error {
	if err == nil {
		return nil
	}

	var cond *types.ConditionalCheckFailedException
	if condErr != nil && errors.As(err, &cond) {
		return condErr
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s %s: %w", op, table, err)
	}
	return fmt.Errorf("%w: %s %s: %w", ErrUnavailable, op, table, err)
}

// encodeFields marshals caller fields, dropping store-managed attributes.
func encodeFields(fields Fields) (map[string]types.AttributeValue, error) {
	item, err := attributevalue.MarshalMap(map[string]any(fields.Clone()))
	if err != nil {
		return nil, fmt.Errorf("marshal fields: %w", err)
	}
	return item, nil
}

// DecodeItem converts a DynamoDB item to a Record.
// Store-managed attributes are lifted out of Fields.
func DecodeItem(raw map[string]types.AttributeValue) (Record, error) {
	var all map[string]any
	if err := attributevalue.UnmarshalMap(raw, &all); err != nil {
		return Record{}, fmt.Errorf("unmarshal item: %w", err)
	}

	rec := Record{Fields: Fields(all).Clone()}
	if v, ok := raw[FieldID].(*types.AttributeValueMemberS); ok {
		rec.ID = v.Value
	}
	if v, ok := raw[FieldCreatedAt].(*types.AttributeValueMemberS); ok {
		rec.CreatedAt = v.Value
	}
	if v, ok := raw[FieldUpdatedAt].(*types.AttributeValueMemberS); ok {
		rec.UpdatedAt = v.Value
	}
	return rec, nil
}

// buildUpdate builds a SET expression from fields, skipping managed attributes.
// Attributes are numbered in key order so the expression is deterministic.
func buildUpdate(fields Fields, now string) (string, map[string]string, map[string]types.AttributeValue, error) {
	names := map[string]string{
		"#updated_at": FieldUpdatedAt,
	}
	values := map[string]types.AttributeValue{
		":updated_at": &types.AttributeValueMemberS{Value: now},
	}

	fieldNames := make([]string, 0, len(fields))
	for k := range fields {
		if isManaged(k) {
			continue
		}
		fieldNames = append(fieldNames, k)
	}
	sort.Strings(fieldNames)

	var setClauses []string
	for i, k := range fieldNames {
		av, err := attributevalue.Marshal(fields[k])
		if err != nil {
			return "", nil, nil, fmt.Errorf("marshal %s: %w", k, err)
		}
		nameKey := fmt.Sprintf("#attr%d", i)
		valueKey := fmt.Sprintf(":val%d", i)
		names[nameKey] = k
		values[valueKey] = av
		setClauses = append(setClauses, fmt.Sprintf("%s = %s", nameKey, valueKey))
	}
	setClauses = append(setClauses, "#updated_at = :updated_at")

	return "SET " + strings.Join(setClauses, ", "), names, values, nil
}
