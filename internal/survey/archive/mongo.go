package archive

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	errx "github.com/Chative-core-poc-v1/questionnaire/internal/core/error"
	"github.com/Chative-core-poc-v1/questionnaire/internal/survey/model"
	logx "github.com/Chative-core-poc-v1/questionnaire/pkg/logger"
)

// documentCollection is the subset of *mongo.Collection the archive needs.
type documentCollection interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
}

// MongoArchive stores one document per record.
type MongoArchive struct {
	coll documentCollection
}

func NewMongoArchive(coll documentCollection) *MongoArchive {
	return &MongoArchive{coll: coll}
}

func (m *MongoArchive) Name() string { return "mongo" }

func (m *MongoArchive) Append(ctx context.Context, rec *model.Record) error {
	if _, err := m.coll.InsertOne(ctx, rec); err != nil {
		logx.Error().Err(err).Str("record", rec.ID).Msg("failed to insert record into mongo")
		return errx.WrapMongo(err)
	}
	return nil
}

func (m *MongoArchive) List(ctx context.Context, topic string) ([]*model.Record, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cur, err := m.coll.Find(ctx, bson.M{"topic": topic}, opts)
	if err != nil {
		logx.Error().Err(err).Str("topic", topic).Msg("failed to query records from mongo")
		return nil, errx.WrapMongo(err)
	}
	defer cur.Close(ctx)

	recs := []*model.Record{}
	if err := cur.All(ctx, &recs); err != nil {
		logx.Error().Err(err).Str("topic", topic).Msg("failed to decode records from mongo")
		return nil, errx.WrapMongo(err)
	}
	return recs, nil
}

func (m *MongoArchive) Count(ctx context.Context, topic string) (int, error) {
	n, err := m.coll.CountDocuments(ctx, bson.M{"topic": topic})
	if err != nil {
		logx.Error().Err(err).Str("topic", topic).Msg("failed to count records in mongo")
		return 0, errx.WrapMongo(err)
	}
	return int(n), nil
}

var _ Archive = (*MongoArchive)(nil)
