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

// AppointmentFilter narrows the admin listing. Date selects a single calendar
// day.
type AppointmentFilter struct {
	Status string
	Date   *time.Time
	Page   int
	Limit  int
}

// AppointmentStats is the status breakdown over the whole collection.
type AppointmentStats struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Confirmed int64 `json:"confirmed"`
	Completed int64 `json:"completed"`
	Cancelled int64 `json:"cancelled"`
}

type AppointmentRepository interface {
	Create(ctx context.Context, a *models.Appointment) error
	List(ctx context.Context, f AppointmentFilter) ([]models.Appointment, int64, error)
	FindByID(ctx context.Context, id string) (*models.Appointment, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.Appointment, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*AppointmentStats, error)
}

type mongoAppointmentRepo struct {
	col *mongo.Collection
}

func NewMongoAppointmentRepo(db *mongo.Database) AppointmentRepository {
	col := db.Collection("appointments")
	_, _ = col.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{{Key: "appointmentDate", Value: 1}, {Key: "appointmentTime", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
	return &mongoAppointmentRepo{col: col}
}

func (r *mongoAppointmentRepo) Create(ctx context.Context, a *models.Appointment) error {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	_, err := r.col.InsertOne(ctx, a)
	return err
}

func (r *mongoAppointmentRepo) List(ctx context.Context, f AppointmentFilter) ([]models.Appointment, int64, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Date != nil {
		day := f.Date.Truncate(24 * time.Hour)
		filter["appointmentDate"] = bson.M{"$gte": day, "$lt": day.Add(24 * time.Hour)}
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "appointmentDate", Value: 1}, {Key: "appointmentTime", Value: 1}}).
		SetSkip(int64((f.Page - 1) * f.Limit)).
		SetLimit(int64(f.Limit))
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	appointments := make([]models.Appointment, 0)
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, 0, err
	}
	return appointments, total, nil
}

func (r *mongoAppointmentRepo) FindByID(ctx context.Context, id string) (*models.Appointment, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var a models.Appointment
	err = r.col.FindOne(ctx, bson.M{"_id": objID}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &a, err
}

func (r *mongoAppointmentRepo) UpdateStatus(ctx context.Context, id, status string) (*models.Appointment, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var a models.Appointment
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": objID}, update, opts).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *mongoAppointmentRepo) Delete(ctx context.Context, id string) error {
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

func (r *mongoAppointmentRepo) Stats(ctx context.Context) (*AppointmentStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}}},
	}
	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID    string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	stats := &AppointmentStats{}
	for _, row := range rows {
		stats.Total += row.Count
		switch row.ID {
		case models.AppointmentPending:
			stats.Pending = row.Count
		case models.AppointmentConfirmed:
			stats.Confirmed = row.Count
		case models.AppointmentCompleted:
			stats.Completed = row.Count
		case models.AppointmentCancelled:
			stats.Cancelled = row.Count
		}
	}
	return stats, nil
}
