// Command cascade is the DynamoDB Streams Lambda that removes the children
// of deleted users and vendors.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/jacentio/vendoradmin/console"
	"github.com/jacentio/vendoradmin/internal/config"
	"github.com/jacentio/vendoradmin/internal/dynamo"
	"github.com/jacentio/vendoradmin/internal/logging"
	"github.com/jacentio/vendoradmin/store"
	"github.com/jacentio/vendoradmin/stream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	client, err := dynamo.NewClient(context.Background(), cfg.Store)
	if err != nil {
		logger.Error("failed to create dynamodb client", "error", err)
		os.Exit(1)
	}

	ddb := store.NewDynamoDB(client, cfg.Store.Tables())
	registry := console.NewRegistry()
	for _, rel := range registry.AllRelationships() {
		logger.Info("cascade relationship",
			"parent", rel.ParentCollection,
			"child", rel.ChildCollection,
			"sub", rel.Sub,
		)
	}

	cascader := store.NewCascader(ddb, registry, logger)
	cascader.SetLimit(cfg.Cascade.Limit)

	handler := stream.NewHandler(cascader, ddb.Config(), logger)
	lambda.Start(handler.HandleCascadeDelete)
}
