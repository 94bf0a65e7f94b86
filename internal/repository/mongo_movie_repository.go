package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movie-catalog/internal/database"
	"movie-catalog/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type movieDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Genre       string             `bson:"genre,omitempty"`
	ReleaseYear *int               `bson:"releaseYear,omitempty"`
	Images      []string           `bson:"images"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

type mongoMovieRepository struct {
	movies  *mongo.Collection
	timeout time.Duration
}

func NewMongoMovieRepository(db *database.Mongo) MovieRepository {
	return &mongoMovieRepository{
		movies:  db.Movies(),
		timeout: db.GetQueryTimeout(),
	}
}

func (r *mongoMovieRepository) Create(ctx context.Context, movie *models.Movie) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	doc := toDocument(movie)
	doc.ID = primitive.NilObjectID

	result, err := r.movies.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert movie failed: %w", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	movie.ID = oid.Hex()
	movie.Images = nonNilImages(movie.Images)
	return nil
}

func (r *mongoMovieRepository) FindAll(ctx context.Context, limit int) ([]models.Movie, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := r.movies.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find movies failed: %w", err)
	}

	var docs []movieDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode movies failed: %w", err)
	}

	movies := make([]models.Movie, 0, len(docs))
	for i := range docs {
		movies = append(movies, *fromDocument(&docs[i]))
	}
	return movies, nil
}

func (r *mongoMovieRepository) FindByID(ctx context.Context, id string) (*models.Movie, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	return decodeSingle(r.movies.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}))
}

func (r *mongoMovieRepository) Update(ctx context.Context, id string, changes models.MovieChanges) (*models.Movie, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	set := setFields(changes)
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	result := r.movies.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, bson.D{{Key: "$set", Value: set}}, opts)
	return decodeSingle(result)
}

func (r *mongoMovieRepository) Delete(ctx context.Context, id string) (*models.Movie, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	return decodeSingle(r.movies.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: oid}}))
}

func decodeSingle(result *mongo.SingleResult) (*models.Movie, error) {
	if errors.Is(result.Err(), mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if result.Err() != nil {
		return nil, result.Err()
	}

	var doc movieDocument
	if err := result.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode movie record failed: %w", err)
	}
	return fromDocument(&doc), nil
}

// setFields builds the $set document for the supplied changes only.
func setFields(changes models.MovieChanges) bson.D {
	set := bson.D{}
	if changes.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *changes.Title})
	}
	if changes.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *changes.Description})
	}
	if changes.Genre != nil {
		set = append(set, bson.E{Key: "genre", Value: *changes.Genre})
	}
	if changes.ReleaseYear != nil {
		set = append(set, bson.E{Key: "releaseYear", Value: *changes.ReleaseYear})
	}
	if changes.Images != nil {
		set = append(set, bson.E{Key: "images", Value: nonNilImages(*changes.Images)})
	}
	if len(set) > 0 && !changes.UpdatedAt.IsZero() {
		set = append(set, bson.E{Key: "updatedAt", Value: changes.UpdatedAt})
	}
	return set
}

func toDocument(m *models.Movie) *movieDocument {
	doc := &movieDocument{
		Title:       m.Title,
		Description: m.Description,
		Genre:       m.Genre,
		ReleaseYear: m.ReleaseYear,
		Images:      nonNilImages(m.Images),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if oid, err := primitive.ObjectIDFromHex(m.ID); err == nil {
		doc.ID = oid
	}
	return doc
}

func fromDocument(doc *movieDocument) *models.Movie {
	return &models.Movie{
		ID:          doc.ID.Hex(),
		Title:       doc.Title,
		Description: doc.Description,
		Genre:       doc.Genre,
		ReleaseYear: doc.ReleaseYear,
		Images:      nonNilImages(doc.Images),
		CreatedAt:   doc.CreatedAt.UTC(),
		UpdatedAt:   doc.UpdatedAt.UTC(),
	}
}
