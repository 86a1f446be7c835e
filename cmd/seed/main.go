package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mikombo-backend/internal/auth"
	"mikombo-backend/internal/config"
	"mikombo-backend/internal/db"
	"mikombo-backend/internal/models"
	"mikombo-backend/internal/store"
)

// Seeding is idempotent: documents are matched on a natural key and only
// inserted when missing, so reruns never duplicate or overwrite admin edits.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		log.Fatal(err)
	}

	now := store.Timestamp(time.Now())

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Printf("seed admin: ADMIN_PASSWORD missing, skipping")
	} else if err := seedAdmin(ctx, cols.Users, envOrDefault("ADMIN_EMAIL", "admin@mikombopark.com"), password, now); err != nil {
		log.Fatalf("seed admin error: %v", err)
	}

	products := []models.Product{
		{Name: "Tomates Bio", Category: "Légumes", Description: "Tomates fraîches cultivées sans pesticides", Price: 2.5, Unit: "kg", Stock: 50, Seasonal: true},
		{Name: "Carottes", Category: "Légumes", Description: "Carottes croquantes et sucrées", Price: 1.8, Unit: "kg", Stock: 40},
		{Name: "Laitue", Category: "Légumes", Description: "Salade fraîche du jour", Price: 1.2, Unit: "pièce", Stock: 30, Seasonal: true},
		{Name: "Mangues", Category: "Fruits", Description: "Mangues juteuses et parfumées", Price: 3.5, Unit: "kg", Stock: 25, Seasonal: true},
		{Name: "Bananes", Category: "Fruits", Description: "Bananes mûres à point", Price: 2.0, Unit: "kg", Stock: 60},
		{Name: "Poulet Fermier", Category: "Viande", Description: "Poulet élevé en liberté", Price: 8.5, Unit: "kg", Stock: 15},
	}
	for _, p := range products {
		p.ID = uuid.NewString()
		p.Photos = []string{}
		p.Visible = true
		p.CreatedAt = now
		if err := insertMissing(ctx, cols.Products, bson.M{"nom": p.Name}, p); err != nil {
			log.Fatalf("seed product error for %s: %v", p.Name, err)
		}
	}

	animals := []models.Animal{
		{Species: "Lion", Name: "Simba", Enclosure: "Savane A", Health: "Excellent", Description: "Mâle adulte majestueux"},
		{Species: "Girafe", Name: "Sophie", Enclosure: "Savane B", Health: models.DefaultHealth, Description: "Femelle gracieuse"},
		{Species: "Zèbre", Name: "Rayure", Enclosure: "Savane A", Health: models.DefaultHealth, Description: "Jeune zèbre joueur"},
		{Species: "Éléphant", Name: "Dumbo", Enclosure: "Enclos C", Health: "Excellent", Description: "Éléphant d'Afrique imposant"},
	}
	for _, a := range animals {
		a.ID = uuid.NewString()
		a.Visible = true
		a.CreatedAt = now
		if err := insertMissing(ctx, cols.Animals, bson.M{"nom": a.Name, "espece": a.Species}, a); err != nil {
			log.Fatalf("seed animal error for %s: %v", a.Name, err)
		}
	}

	cultures := []models.Culture{
		{CropType: "Tomates", Surface: 2.5, ProductionPeriod: "Mars - Juillet", Status: models.CultureInProduction},
		{CropType: "Carottes", Surface: 1.8, ProductionPeriod: "Avril - Août", Status: models.CultureInProduction},
		{CropType: "Mangues", Surface: 5.0, ProductionPeriod: "Octobre - Février", Status: models.CultureOffSeason},
	}
	for _, c := range cultures {
		c.ID = uuid.NewString()
		c.CreatedAt = now
		if err := insertMissing(ctx, cols.Cultures, bson.M{"type_culture": c.CropType}, c); err != nil {
			log.Fatalf("seed culture error for %s: %v", c.CropType, err)
		}
	}

	log.Println("seed completed")
}

func insertMissing(ctx context.Context, col *mongo.Collection, filter bson.M, doc interface{}) error {
	_, err := col.UpdateOne(ctx, filter, bson.M{"$setOnInsert": doc}, options.Update().SetUpsert(true))
	return err
}

// seedAdmin creates the admin account or resets its password and role.
func seedAdmin(ctx context.Context, users *mongo.Collection, email, password string, now time.Time) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	update := bson.M{
		"$set": bson.M{
			"password_hash": hash,
			"role":          models.RoleAdmin,
		},
		"$setOnInsert": bson.M{
			"id":         uuid.NewString(),
			"email":      email,
			"nom":        "Admin",
			"prenom":     "Mikombo",
			"telephone":  envOrDefault("ADMIN_PHONE", ""),
			"created_at": now,
		},
	}
	_, err = users.UpdateOne(ctx, bson.M{"email": email}, update, options.Update().SetUpsert(true))
	return err
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
