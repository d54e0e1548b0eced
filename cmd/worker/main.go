package main

import (
	"database/sql"
	"flag"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"supermarket-checkout/pkg/activity"
	"supermarket-checkout/pkg/config"
	"supermarket-checkout/pkg/db"
	"supermarket-checkout/pkg/workflow"
)

const checkoutQueueFlag = "task-queue"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := cfg.NewLogger().With().Str("env", cfg.AppEnv).Logger()

	// Define a flag for the task queue
	taskQueue := flag.String(checkoutQueueFlag, cfg.TaskQueue, "Specify the checkout task queue name")
	flag.Parse()

	fmt.Printf("Starting worker for task queue: %s\n", *taskQueue)

	switch cfg.DatabaseKind {
	case config.DatabaseKindMemory:
		activity.UseDatabase(db.NewInMemoryBasketDatabase(logger))
	case config.DatabaseKindSql:
		sqlDb, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("unable to open basket database")
		}
		defer sqlDb.Close()
		activity.UseDatabase(db.NewSqlBasketDatabase(sqlDb, logger))
	}

	// Create Temporal client
	client, err := client.Dial(client.Options{HostPort: cfg.TemporalHostPort})
	if err != nil {
		logger.Fatal().Err(err).Msg("unable to create Temporal client")
	}
	defer client.Close()

	// Create a worker for a specific task queue
	w := worker.New(client, *taskQueue, worker.Options{})

	// Register your workflow and activities
	w.RegisterWorkflow(workflow.CheckoutWorkflow)
	w.RegisterActivity(activity.CreateBasketIfNotExistActivity)
	w.RegisterActivity(activity.RecordScanIfNotExistActivity)
	w.RegisterActivity(activity.CloseBasketActivity)

	// Start the worker
	err = w.Run(worker.InterruptCh())
	if err != nil {
		logger.Fatal().Err(err).Msg("unable to start worker")
	}
}
