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

type SliderRepository interface {
	ListActive(ctx context.Context) ([]models.SliderImage, error)
	ListAll(ctx context.Context) ([]models.SliderImage, error)
	FindByID(ctx context.Context, id string) (*models.SliderImage, error)
	Create(ctx context.Context, s *models.SliderImage) error
	Update(ctx context.Context, id string, fields map[string]any) (*models.SliderImage, error)
	Delete(ctx context.Context, id string) error
}

type mongoSliderRepo struct {
	col *mongo.Collection
}

func NewMongoSliderRepo(db *mongo.Database) SliderRepository {
	return &mongoSliderRepo{col: db.Collection("sliderimages")}
}

// Slides order by display position first, then recency.
var sliderSort = bson.D{{Key: "order", Value: 1}, {Key: "createdAt", Value: -1}}

func (r *mongoSliderRepo) ListActive(ctx context.Context) ([]models.SliderImage, error) {
	return r.find(ctx, bson.M{"isActive": true})
}

func (r *mongoSliderRepo) ListAll(ctx context.Context) ([]models.SliderImage, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoSliderRepo) find(ctx context.Context, filter bson.M) ([]models.SliderImage, error) {
	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(sliderSort))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	slides := make([]models.SliderImage, 0)
	if err := cursor.All(ctx, &slides); err != nil {
		return nil, err
	}
	return slides, nil
}

func (r *mongoSliderRepo) FindByID(ctx context.Context, id string) (*models.SliderImage, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var s models.SliderImage
	err = r.col.FindOne(ctx, bson.M{"_id": objID}).Decode(&s)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &s, err
}

func (r *mongoSliderRepo) Create(ctx context.Context, s *models.SliderImage) error {
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now
	_, err := r.col.InsertOne(ctx, s)
	return err
}

func (r *mongoSliderRepo) Update(ctx context.Context, id string, fields map[string]any) (*models.SliderImage, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	set := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var s models.SliderImage
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": set}, opts).Decode(&s)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *mongoSliderRepo) Delete(ctx context.Context, id string) error {
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
