package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Collections struct {
	Users        *mongo.Collection
	Products     *mongo.Collection
	Animals      *mongo.Collection
	Cultures     *mongo.Collection
	Reservations *mongo.Collection
	Orders       *mongo.Collection
	Messages     *mongo.Collection
}

func Connect(ctx context.Context, uri, dbName string) (*mongo.Client, *Collections, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, err
	}

	db := client.Database(dbName)

	cols := &Collections{
		Users:        db.Collection("users"),
		Products:     db.Collection("produits"),
		Animals:      db.Collection("animaux"),
		Cultures:     db.Collection("cultures"),
		Reservations: db.Collection("reservations"),
		Orders:       db.Collection("commandes"),
		Messages:     db.Collection("messages"),
	}

	return client, cols, nil
}

func (c *Collections) all() []*mongo.Collection {
	return []*mongo.Collection{c.Users, c.Products, c.Animals, c.Cultures, c.Reservations, c.Orders}
}

func EnsureIndexes(ctx context.Context, cols *Collections) error {
	indexTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	for _, col := range cols.all() {
		_, err := col.Indexes().CreateOne(indexTimeout, mongo.IndexModel{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return err
		}
	}

	// Registration pre-checks the email; the unique index closes the race.
	_, err := cols.Users.Indexes().CreateOne(indexTimeout, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = cols.Products.Indexes().CreateOne(indexTimeout, mongo.IndexModel{
		Keys: bson.D{{Key: "visible", Value: 1}, {Key: "categorie", Value: 1}},
	})
	if err != nil {
		return err
	}

	_, err = cols.Reservations.Indexes().CreateMany(indexTimeout, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "date_visite", Value: 1}}},
	})
	if err != nil {
		return err
	}

	_, err = cols.Orders.Indexes().CreateOne(indexTimeout, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
	})
	if err != nil {
		return err
	}

	return nil
}
