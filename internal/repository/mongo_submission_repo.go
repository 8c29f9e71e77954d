package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/MRKIKSY/backendpaystacktestmode/internal/models"
)

// ConnectMongo builds a client for uri. The driver dials lazily and keeps
// reconnecting on its own, so an unreachable server is not an error here.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}
	return client, nil
}

type mongoSubmission struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	models.Submission `bson:",inline"`
}

type MongoSubmissionRepo struct {
	coll *mongo.Collection
}

func NewMongoSubmissionRepo(database *mongo.Database) *MongoSubmissionRepo {
	return &MongoSubmissionRepo{coll: database.Collection(SubmissionsCollection)}
}

func (r *MongoSubmissionRepo) Create(ctx context.Context, sub *models.Submission) (string, error) {
	res, err := r.coll.InsertOne(ctx, mongoSubmission{Submission: *sub})
	if err != nil {
		return "", fmt.Errorf("mongo: insert submission: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return fmt.Sprint(res.InsertedID), nil
}

func (r *MongoSubmissionRepo) FindAll(ctx context.Context) ([]models.Submission, error) {
	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("mongo: find submissions: %w", err)
	}
	var docs []mongoSubmission
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo: decode submissions: %w", err)
	}
	subs := make([]models.Submission, 0, len(docs))
	for _, d := range docs {
		s := d.Submission
		s.ID = d.ID.Hex()
		subs = append(subs, s)
	}
	return subs, nil
}

func (r *MongoSubmissionRepo) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, readpref.Primary())
}
