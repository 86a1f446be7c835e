package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoCollection[T any] struct {
	col *mongo.Collection
}

func NewMongoCollection[T any](col *mongo.Collection) *MongoCollection[T] {
	return &MongoCollection[T]{col: col}
}

// documents are decoded without Mongo's _id.
var withoutObjectID = bson.M{"_id": 0}

func (c *MongoCollection[T]) Insert(ctx context.Context, doc T) error {
	if _, err := c.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (c *MongoCollection[T]) FindByID(ctx context.Context, id string) (T, error) {
	return c.FindOne(ctx, bson.M{IDField: id})
}

func (c *MongoCollection[T]) FindOne(ctx context.Context, filter bson.M) (T, error) {
	var out T
	opts := options.FindOne().SetProjection(withoutObjectID)
	if err := c.col.FindOne(ctx, filter, opts).Decode(&out); err != nil {
		return out, translate(err)
	}
	return out, nil
}

func (c *MongoCollection[T]) Find(ctx context.Context, filter bson.M, limit int64) ([]T, error) {
	if filter == nil {
		filter = bson.M{}
	}
	opts := options.Find().
		SetProjection(withoutObjectID).
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := c.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]T, 0)
	for cursor.Next(ctx) {
		var item T
		if err := cursor.Decode(&item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *MongoCollection[T]) Update(ctx context.Context, id string, set bson.M) (T, error) {
	return c.findOneAndUpdate(ctx, id, bson.M{"$set": set})
}

func (c *MongoCollection[T]) Push(ctx context.Context, id, field string, value interface{}) (T, error) {
	return c.findOneAndUpdate(ctx, id, bson.M{"$push": bson.M{field: value}})
}

func (c *MongoCollection[T]) findOneAndUpdate(ctx context.Context, id string, update bson.M) (T, error) {
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(withoutObjectID)

	var updated T
	if err := c.col.FindOneAndUpdate(ctx, bson.M{IDField: id}, update, opts).Decode(&updated); err != nil {
		return updated, translate(err)
	}
	return updated, nil
}

func (c *MongoCollection[T]) Delete(ctx context.Context, id string) error {
	res, err := c.col.DeleteOne(ctx, bson.M{IDField: id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *MongoCollection[T]) Count(ctx context.Context, filter bson.M) (int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	return c.col.CountDocuments(ctx, filter)
}

func translate(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}
