package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/solace-app/backend/internal/apperr"
)

// MongoStore implements Store against a MongoDB database.
type MongoStore struct {
	db *mongo.Database
}

// NewMongoStore creates a MongoStore over the named database.
func NewMongoStore(client *mongo.Client, dbName string) *MongoStore {
	return &MongoStore{db: client.Database(dbName)}
}

// translate converts a Filter into a bson query, turning "_id" hex strings
// into ObjectIDs and In values into $in clauses.
func translate(filter Filter) (bson.M, error) {
	query := bson.M{}
	for key, value := range filter {
		switch v := value.(type) {
		case In:
			vals := make(bson.A, 0, len(v))
			for _, item := range v {
				converted, err := convertValue(key, item)
				if err != nil {
					return nil, err
				}
				vals = append(vals, converted)
			}
			query[key] = bson.M{"$in": vals}
		default:
			converted, err := convertValue(key, value)
			if err != nil {
				return nil, err
			}
			query[key] = converted
		}
	}
	return query, nil
}

func convertValue(key string, value any) (any, error) {
	if key != "_id" {
		return value, nil
	}
	hex, ok := value.(string)
	if !ok {
		return value, nil
	}
	objID, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return nil, apperr.Wrap(apperr.Validation, "invalid id format", err)
	}
	return objID, nil
}

func (s *MongoStore) Get(ctx context.Context, collection string, filter Filter, out any) error {
	query, err := translate(filter)
	if err != nil {
		return err
	}
	err = s.db.Collection(collection).FindOne(ctx, query).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperr.Newf(apperr.NotFound, "no document found in %s", collection)
	}
	if err != nil {
		return apperr.Wrap(apperr.Dependency, "store lookup failed", err)
	}
	return nil
}

func (s *MongoStore) GetAll(ctx context.Context, collection string, filter Filter, out any) error {
	query, err := translate(filter)
	if err != nil {
		return err
	}
	cursor, err := s.db.Collection(collection).Find(ctx, query)
	if err != nil {
		return apperr.Wrap(apperr.Dependency, "store query failed", err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, out); err != nil {
		return apperr.Wrap(apperr.Dependency, "store decode failed", err)
	}
	return nil
}

func (s *MongoStore) Add(ctx context.Context, collection string, doc any) (string, error) {
	res, err := s.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return "", apperr.Wrap(apperr.Dependency, "store insert failed", err)
	}
	objID, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", apperr.New(apperr.Dependency, "store returned an unexpected id type")
	}
	return objID.Hex(), nil
}

func (s *MongoStore) Update(ctx context.Context, collection, id, field string, value any) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.Wrap(apperr.Validation, "invalid id format", err)
	}
	res, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{field: value}})
	if err != nil {
		return apperr.Wrap(apperr.Dependency, "store update failed", err)
	}
	if res.MatchedCount == 0 {
		return apperr.Newf(apperr.NotFound, "no document found in %s", collection)
	}
	return nil
}

func (s *MongoStore) Remove(ctx context.Context, collection string, filter Filter) (int64, error) {
	query, err := translate(filter)
	if err != nil {
		return 0, err
	}
	res, err := s.db.Collection(collection).DeleteMany(ctx, query)
	if err != nil {
		return 0, apperr.Wrap(apperr.Dependency, "store delete failed", err)
	}
	return res.DeletedCount, nil
}
