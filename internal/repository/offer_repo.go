package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pmihealth/cardiology-api/internal/models"
)

// PublicOfferLimit caps the public listing at the most recent active offers.
const PublicOfferLimit = 12

type OfferRepository interface {
	ListActive(ctx context.Context) ([]models.Offer, error)
	ListAll(ctx context.Context) ([]models.Offer, error)
	FindByID(ctx context.Context, id string) (*models.Offer, error)
	Create(ctx context.Context, o *models.Offer) error
	// Update merges the given fields into the document and returns the
	// updated record.
	Update(ctx context.Context, id string, fields map[string]any) (*models.Offer, error)
	Delete(ctx context.Context, id string) error
}

type mongoOfferRepo struct {
	col *mongo.Collection
}

func NewMongoOfferRepo(db *mongo.Database) OfferRepository {
	return &mongoOfferRepo{col: db.Collection("offers")}
}

func (r *mongoOfferRepo) ListActive(ctx context.Context) ([]models.Offer, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(PublicOfferLimit)
	return r.find(ctx, bson.M{"isActive": true}, opts)
}

func (r *mongoOfferRepo) ListAll(ctx context.Context) ([]models.Offer, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.find(ctx, bson.M{}, opts)
}

func (r *mongoOfferRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Offer, error) {
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	offers := make([]models.Offer, 0)
	if err := cursor.All(ctx, &offers); err != nil {
		return nil, err
	}
	return offers, nil
}

func (r *mongoOfferRepo) FindByID(ctx context.Context, id string) (*models.Offer, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var o models.Offer
	err = r.col.FindOne(ctx, bson.M{"_id": objID}).Decode(&o)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &o, err
}

func (r *mongoOfferRepo) Create(ctx context.Context, o *models.Offer) error {
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now
	_, err := r.col.InsertOne(ctx, o)
	return err
}

func (r *mongoOfferRepo) Update(ctx context.Context, id string, fields map[string]any) (*models.Offer, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	set := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var o models.Offer
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": set}, opts).Decode(&o)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *mongoOfferRepo) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
