/* main.go
 * The entry point for the backend functions. Wires the store, the trigger
 * router fed by mongo change streams, and the HTTP callable surface.
 * Usage: go run main.go -db="<database>" -addr="<listen address>"
 */

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	api "matchroom/api/api"
	"matchroom/api/store"
	"matchroom/trigger"
	"matchroom/web"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	// Flags
	dbPtr := flag.String("db", "matchroom", "Name of the mongo database")
	addrPtr := flag.String("addr", ":8080", "Listen address for the HTTP callable surface")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	mongoURI := os.Getenv("MONGO_URI")
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := api.NewAPI(ctx, *dbPtr, mongoURI, logger)
	if err != nil {
		logger.Fatal("failed to initialize API", zap.Error(err))
	}
	defer func() {
		if err := a.Store.GetClient().Disconnect(context.Background()); err != nil {
			logger.Error("failed to disconnect store", zap.Error(err))
		}
	}()

	// In-process pub/sub carrying document change events from the change
	// stream source to the trigger handlers.
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, trigger.NewWatermillLogger(logger))
	defer func() { _ = pubSub.Close() }()

	router, err := trigger.NewRouter(trigger.NewHandlers(a, logger), pubSub, logger)
	if err != nil {
		logger.Fatal("failed to build trigger router", zap.Error(err))
	}

	go func() {
		if err := router.Run(ctx); err != nil {
			logger.Error("trigger router stopped", zap.Error(err))
			stop()
		}
	}()

	s, ok := a.Store.(*store.Store)
	if !ok {
		logger.Fatal("API store is not a mongo store")
	}
	source := trigger.NewSource(s, pubSub, logger)
	go func() {
		if err := source.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("change stream source stopped", zap.Error(err))
			stop()
		}
	}()

	cfg := web.Config{
		Addr:      *addrPtr,
		JWTSecret: jwtSecret,
		API:       a,
		Log:       logger,
	}
	if err := web.Start(cfg); err != nil {
		logger.Fatal("HTTP server stopped", zap.Error(err))
	}
}
