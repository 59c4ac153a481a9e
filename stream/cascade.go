// Package stream provides DynamoDB Streams handlers for cascade operations.
//
// The console cascades deletes itself. The stream handler repeats the
// cascade for parents removed by any other writer (scripts, the AWS console,
// a retried Lambda). Cascades are idempotent, so running both is safe.
package stream

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/vendoradmin/internal/keys"
	"github.com/jacentio/vendoradmin/store"
)

// Handler processes DynamoDB stream events for cascade deletes.
type Handler struct {
	cascader *store.Cascader
	config   store.Config
	logger   *slog.Logger
}

// NewHandler creates a new stream handler.
// config maps stream source tables back to collections.
func NewHandler(cascader *store.Cascader, config store.Config, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		cascader: cascader,
		config:   config,
		logger:   logger,
	}
}

// HandleCascadeDelete deletes the children of every removed parent record.
// This function is designed to be used as an AWS Lambda handler.
func (h *Handler) HandleCascadeDelete(ctx context.Context, event events.DynamoDBEvent) error {
	for _, record := range event.Records {
		if err := h.processRecord(ctx, record); err != nil {
			h.logger.Error("failed to process record",
				"eventID", record.EventID,
				"error", err,
			)
			return err // Will retry, eventually DLQ
		}
	}
	return nil
}

// processRecord processes a single DynamoDB stream record.
func (h *Handler) processRecord(ctx context.Context, record events.DynamoDBEventRecord) error {
	if record.EventName != string(events.DynamoDBOperationTypeRemove) {
		return nil
	}

	table := TableFromARN(record.EventSourceArn)
	collection, ok := h.config.CollectionForTable(table)
	if !ok || !h.cascader.Registry().HasChildren(collection) {
		return nil
	}

	id, err := removedID(record.Change)
	if err != nil {
		return fmt.Errorf("decode %s image: %w", table, err)
	}
	if id == "" {
		h.logger.Warn("removed record has no id", "table", table, "eventID", record.EventID)
		return nil
	}

	ref := keys.Ref(collection, id)
	h.logger.Info("processing cascade delete", "parent", ref)

	report := h.cascader.DeleteChildren(ctx, collection, id)
	if err := report.Err(); err != nil {
		return fmt.Errorf("cascade %s: %w", ref, err)
	}
	return nil
}

// removedID returns the id of the removed record, from its keys or,
// failing that, its old image.
func removedID(change events.DynamoDBStreamRecord) (string, error) {
	if id := getStringAttr(change.Keys, store.FieldID); id != "" {
		return id, nil
	}
	if len(change.OldImage) == 0 {
		return "", nil
	}
	rec, err := store.DecodeItem(ConvertImage(change.OldImage))
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

// TableFromARN extracts the table name from a stream or table ARN
// (arn:aws:dynamodb:region:account:table/NAME/stream/LABEL).
func TableFromARN(arn string) string {
	_, rest, ok := strings.Cut(arn, ":table/")
	if !ok {
		return ""
	}
	table, _, _ := strings.Cut(rest, "/")
	return table
}

// getStringAttr extracts a string attribute from a DynamoDB stream image.
func getStringAttr(image map[string]events.DynamoDBAttributeValue, key string) string {
	if v, ok := image[key]; ok && v.DataType() == events.DataTypeString {
		return v.String()
	}
	return ""
}

// ConvertImage converts a DynamoDB stream image to SDK attribute values,
// so stream records can be decoded like table items.
func ConvertImage(image map[string]events.DynamoDBAttributeValue) map[string]types.AttributeValue {
	result := make(map[string]types.AttributeValue, len(image))
	for k, v := range image {
		if av := convertValue(v); av != nil {
			result[k] = av
		}
	}
	return result
}

func convertValue(v events.DynamoDBAttributeValue) types.AttributeValue {
	switch v.DataType() {
	case events.DataTypeString:
		return &types.AttributeValueMemberS{Value: v.String()}
	case events.DataTypeNumber:
		return &types.AttributeValueMemberN{Value: v.Number()}
	case events.DataTypeBinary:
		return &types.AttributeValueMemberB{Value: v.Binary()}
	case events.DataTypeBinarySet:
		return &types.AttributeValueMemberBS{Value: v.BinarySet()}
	case events.DataTypeBoolean:
		return &types.AttributeValueMemberBOOL{Value: v.Boolean()}
	case events.DataTypeNull:
		return &types.AttributeValueMemberNULL{Value: true}
	case events.DataTypeStringSet:
		return &types.AttributeValueMemberSS{Value: v.StringSet()}
	case events.DataTypeNumberSet:
		return &types.AttributeValueMemberNS{Value: v.NumberSet()}
	case events.DataTypeList:
		list := make([]types.AttributeValue, 0, len(v.List()))
		for _, item := range v.List() {
			if av := convertValue(item); av != nil {
				list = append(list, av)
			}
		}
		return &types.AttributeValueMemberL{Value: list}
	case events.DataTypeMap:
		return &types.AttributeValueMemberM{Value: ConvertImage(v.Map())}
	default:
		return nil
	}
}
