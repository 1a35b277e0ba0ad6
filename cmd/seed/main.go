package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"refugio/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var cabins = []model.Cabin{
	{
		Name:        "Refugio del Bosque",
		Description: "A cozy cabin tucked into the forest, a short walk from the lake trailhead.",
		Capacity:    4,
		Price:       120,
		Amenities:   []string{"wifi", "fireplace", "hot_tub", "kitchen"},
		Image:       "/images/refugio-del-bosque.jpg",
		IsActive:    true,
	},
	{
		Name:        "Refugio del Lago",
		Description: "Lakefront cabin with a private dock and panoramic views.",
		Capacity:    6,
		Price:       180,
		Amenities:   []string{"wifi", "fireplace", "kitchen", "dock"},
		Image:       "/images/refugio-del-lago.jpg",
		IsActive:    true,
	},
	{
		Name:        "Refugio de la Montaña",
		Description: "Compact mountain hideout for couples, wood stove included.",
		Capacity:    2,
		Price:       95,
		Amenities:   []string{"fireplace", "kitchen"},
		Image:       "/images/refugio-de-la-montana.jpg",
		IsActive:    true,
	},
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	dbName := os.Getenv("MONGO_DATABASE_NAME")
	if dbName == "" {
		dbName = "refugio"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("❌ Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	collection := client.Database(dbName).Collection("Cabins")

	count, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Fatalf("❌ Failed to count cabins: %v", err)
	}
	if count > 0 {
		fmt.Printf("ℹ️ Cabins collection already has %d documents, skipping seed.\n", count)
		return
	}

	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(cabins))
	for _, c := range cabins {
		c.CreatedAt = now
		docs = append(docs, c)
	}

	result, err := collection.InsertMany(ctx, docs)
	if err != nil {
		log.Fatalf("❌ Failed to seed cabins: %v", err)
	}

	fmt.Printf("🌲 Seeded %d cabins into %s.\n", len(result.InsertedIDs), dbName)
}
