package db

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ProductsCollection *mongo.Collection
	OrdersCollection   *mongo.Collection
	UserCollection     *mongo.Collection
	Client             *mongo.Client

	// Configured is false when MONGODB_URI is absent. The service still
	// starts; data handlers answer with a "not configured" message instead.
	Configured bool
)

// Init connects to MongoDB using MONGODB_URI. A missing URI is not an error:
// the shop degrades to its unconfigured state rather than failing hard.
func Init() error {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		log.Println("MONGODB_URI not set; running without a database")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return err
	}

	dbName := os.Getenv("MONGODB_DB")
	if dbName == "" {
		dbName = "catashop"
	}

	Client = client
	ProductsCollection = client.Database(dbName).Collection("products")
	OrdersCollection = client.Database(dbName).Collection("orders")
	UserCollection = client.Database(dbName).Collection("users")
	Configured = true
	return nil
}

// Close disconnects the client if one was established.
func Close(ctx context.Context) {
	if Client != nil {
		if err := Client.Disconnect(ctx); err != nil {
			log.Printf("Mongo disconnect error: %v", err)
		}
	}
}
