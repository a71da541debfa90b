package repo

import (
	"context"
	"time"

	"github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ i.LayoutRepo = &MongoLayoutRepo{}

// layoutDocument represents the BSON version of a maze record for database storage.
type layoutDocument struct {
	ID         string    `bson:"_id"`
	Rows       int       `bson:"rows"`
	Columns    int       `bson:"columns"`
	Seed       int64     `bson:"seed"`
	Vertical   [][]bool  `bson:"vertical"`
	Horizontal [][]bool  `bson:"horizontal"`
	CreatedAt  time.Time `bson:"createdAt"`
}

func (d *layoutDocument) record() (*domain.MazeRecord, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "stored layout has invalid id %q", d.ID)
	}

	return &domain.MazeRecord{
		ID:         id,
		Rows:       d.Rows,
		Columns:    d.Columns,
		Seed:       d.Seed,
		Vertical:   d.Vertical,
		Horizontal: d.Horizontal,
		CreatedAt:  d.CreatedAt.UTC(),
	}, nil
}

// MongoLayoutRepo handles the persistence of maze records in MongoDB.
type MongoLayoutRepo struct {
	collection *mongo.Collection
}

// NewMongoLayoutRepo creates a new MongoLayoutRepo with the given MongoDB client, database name, and collection name.
func NewMongoLayoutRepo(client *mongo.Client, dbName, collectionName string) *MongoLayoutRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &MongoLayoutRepo{
		collection: collection,
	}
}

// EnsureIndexes creates the unique index used by seed lookups.
func (r *MongoLayoutRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "rows", Value: 1}, {Key: "columns", Value: 1}, {Key: "seed", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return errors.Wrap(err, "creating layout seed index")
}

// Save inserts or updates a maze record in the repository.
func (r *MongoLayoutRepo) Save(ctx context.Context, record *domain.MazeRecord) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	filter := bson.M{"_id": record.ID.String()}
	update := bson.M{
		"$set": bson.M{
			"rows":       record.Rows,
			"columns":    record.Columns,
			"seed":       record.Seed,
			"vertical":   record.Vertical,
			"horizontal": record.Horizontal,
			"createdAt":  record.CreatedAt,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.Wrapf(domain.ErrDuplicateLayout, "layout for %dx%d seed %d: %v", record.Rows, record.Columns, record.Seed, err)
		}
		return errors.Wrap(err, "saving layout")
	}

	return nil
}

// ByID retrieves a maze record by its ID.
func (r *MongoLayoutRepo) ByID(ctx context.Context, id uuid.UUID) (*domain.MazeRecord, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()})
}

// BySeed retrieves the maze record generated for the given dimensions and seed.
func (r *MongoLayoutRepo) BySeed(ctx context.Context, rows, columns int, seed int64) (*domain.MazeRecord, error) {
	return r.findOne(ctx, bson.M{"rows": rows, "columns": columns, "seed": seed})
}

func (r *MongoLayoutRepo) findOne(ctx context.Context, filter bson.M) (*domain.MazeRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	var doc layoutDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLayoutNotFound
		}
		return nil, errors.Wrap(err, "finding layout")
	}
	return doc.record()
}
