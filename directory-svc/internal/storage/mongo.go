package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"business-directory/directory-svc/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	businessCollection = "businesses"
	reviewCollection   = "reviews"
)

type MongoRepository struct {
	businesses *mongo.Collection
	reviews    *mongo.Collection
	timeout    time.Duration
}

func NewMongoRepository(db *mongo.Database, timeout time.Duration) *MongoRepository {
	return &MongoRepository{
		businesses: db.Collection(businessCollection),
		reviews:    db.Collection(reviewCollection),
		timeout:    timeout,
	}
}

type pointDocument struct {
	Type        string    `bson:"type"`
	Coordinates []float64 `bson:"coordinates"`
}

type businessDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Category    string             `bson:"category"`
	Location    string             `bson:"location"`
	Coordinates *pointDocument     `bson:"coordinates,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

type reviewDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	BusinessID primitive.ObjectID `bson:"businessId"`
	Rating     int                `bson:"rating"`
	Comment    string             `bson:"comment"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

// EnsureIndexes creates the spherical index the radius query depends on.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	_, err := r.businesses.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "coordinates", Value: "2dsphere"}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("create business indexes: %w", err)
	}

	_, err = r.reviews.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "businessId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create review indexes: %w", err)
	}
	return nil
}

func (r *MongoRepository) ListBusinesses(ctx context.Context, filter domain.BusinessFilter) ([]domain.Business, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.businesses.Find(ctx, businessQuery(filter), opts)
	if err != nil {
		return nil, err
	}

	var docs []businessDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	businesses := make([]domain.Business, 0, len(docs))
	for _, doc := range docs {
		businesses = append(businesses, doc.toDomain())
	}
	return businesses, nil
}

func (r *MongoRepository) GetBusiness(ctx context.Context, id string) (*domain.Business, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBusinessNotFound
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var doc businessDocument
	if err := r.businesses.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBusinessNotFound
		}
		return nil, err
	}

	business := doc.toDomain()
	return &business, nil
}

func (r *MongoRepository) InsertBusiness(ctx context.Context, business *domain.Business) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	doc := toBusinessDocument(business)
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt = now()

	if _, err := r.businesses.InsertOne(ctx, doc); err != nil {
		return err
	}

	business.ID = doc.ID.Hex()
	business.CreatedAt = doc.CreatedAt
	return nil
}

func (r *MongoRepository) UpdateBusiness(ctx context.Context, business *domain.Business) error {
	oid, err := primitive.ObjectIDFromHex(business.ID)
	if err != nil {
		return domain.ErrBusinessNotFound
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	doc := toBusinessDocument(business)
	set := bson.M{
		"name":        doc.Name,
		"description": doc.Description,
		"category":    doc.Category,
		"location":    doc.Location,
	}
	update := bson.M{"$set": set}
	if doc.Coordinates != nil {
		set["coordinates"] = doc.Coordinates
	} else {
		update["$unset"] = bson.M{"coordinates": ""}
	}

	result, err := r.businesses.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrBusinessNotFound
	}
	return nil
}

func (r *MongoRepository) DeleteBusiness(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrBusinessNotFound
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result, err := r.businesses.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrBusinessNotFound
	}
	return nil
}

func (r *MongoRepository) ListBusinessReviews(ctx context.Context, businessID string) ([]domain.Review, error) {
	oid, err := primitive.ObjectIDFromHex(businessID)
	if err != nil {
		return []domain.Review{}, nil
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.reviews.Find(ctx, bson.M{"businessId": oid}, opts)
	if err != nil {
		return nil, err
	}

	var docs []reviewDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	reviews := make([]domain.Review, 0, len(docs))
	for _, doc := range docs {
		reviews = append(reviews, doc.toDomain())
	}
	return reviews, nil
}

func (r *MongoRepository) GetReview(ctx context.Context, id string) (*domain.Review, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrReviewNotFound
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var doc reviewDocument
	if err := r.reviews.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, err
	}

	review := doc.toDomain()
	return &review, nil
}

func (r *MongoRepository) InsertReview(ctx context.Context, review *domain.Review) error {
	businessID, err := primitive.ObjectIDFromHex(review.BusinessID)
	if err != nil {
		return domain.ErrBusinessNotFound
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	doc := reviewDocument{
		ID:         primitive.NewObjectID(),
		BusinessID: businessID,
		Rating:     review.Rating,
		Comment:    review.Comment,
		CreatedAt:  now(),
	}
	if _, err := r.reviews.InsertOne(ctx, doc); err != nil {
		return err
	}

	review.ID = doc.ID.Hex()
	review.CreatedAt = doc.CreatedAt
	return nil
}

func (r *MongoRepository) UpdateReview(ctx context.Context, review *domain.Review) error {
	oid, err := primitive.ObjectIDFromHex(review.ID)
	if err != nil {
		return domain.ErrReviewNotFound
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result, err := r.reviews.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"rating":  review.Rating,
		"comment": review.Comment,
	}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}

func (r *MongoRepository) DeleteReview(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrReviewNotFound
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result, err := r.reviews.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}

func (r *MongoRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

// businessQuery builds the find filter: a $centerSphere cap on the 2dsphere
// index AND a literal case-insensitive match over the text fields.
func businessQuery(filter domain.BusinessFilter) bson.M {
	query := bson.M{}
	if filter.Near != nil {
		query["coordinates"] = bson.M{
			"$geoWithin": bson.M{
				"$centerSphere": bson.A{
					bson.A{filter.Near.Lng, filter.Near.Lat},
					filter.Near.RadiusRadians(),
				},
			},
		}
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"description": pattern},
			bson.M{"category": pattern},
			bson.M{"location": pattern},
		}
	}
	return query
}

func toBusinessDocument(business *domain.Business) businessDocument {
	doc := businessDocument{
		Name:        business.Name,
		Description: business.Description,
		Category:    business.Category,
		Location:    business.Location,
		CreatedAt:   business.CreatedAt,
	}
	if business.Coordinates != nil {
		doc.Coordinates = &pointDocument{
			Type:        business.Coordinates.Type,
			Coordinates: business.Coordinates.Coordinates,
		}
	}
	return doc
}

func (d businessDocument) toDomain() domain.Business {
	business := domain.Business{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Category:    d.Category,
		Location:    d.Location,
		CreatedAt:   d.CreatedAt,
	}
	if d.Coordinates != nil && len(d.Coordinates.Coordinates) == 2 {
		business.Coordinates = &domain.GeoPoint{
			Type:        d.Coordinates.Type,
			Coordinates: d.Coordinates.Coordinates,
		}
	}
	return business
}

func (d reviewDocument) toDomain() domain.Review {
	return domain.Review{
		ID:         d.ID.Hex(),
		BusinessID: d.BusinessID.Hex(),
		Rating:     d.Rating,
		Comment:    d.Comment,
		CreatedAt:  d.CreatedAt,
	}
}

// now is truncated to the millisecond precision both stores keep.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
