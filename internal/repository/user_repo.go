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

// UserStats is the aggregate breakdown of registered users.
type UserStats struct {
	TotalUsers   int64 `bson:"totalUsers" json:"totalUsers"`
	MaleUsers    int64 `bson:"maleUsers" json:"maleUsers"`
	FemaleUsers  int64 `bson:"femaleUsers" json:"femaleUsers"`
	OtherGender  int64 `bson:"otherGender" json:"otherGender"`
	NewThisWeek  int64 `bson:"newThisWeek" json:"newThisWeek"`
	NewThisMonth int64 `bson:"newThisMonth" json:"newThisMonth"`
}

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAdmin(ctx context.Context) (*models.User, error)
	// PromoteOrCreateAdmin atomically promotes the record holding the
	// reserved admin email to role=admin, or inserts defaults when no such
	// record exists. A single upsert, so two concurrent first logins cannot
	// both create an admin.
	PromoteOrCreateAdmin(ctx context.Context, defaults *models.User) (*models.User, error)
	List(ctx context.Context, page, limit int) ([]models.User, int64, error)
	Stats(ctx context.Context) (*UserStats, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

type mongoUserRepo struct {
	col *mongo.Collection
}

func NewMongoUserRepo(db *mongo.Database) UserRepository {
	col := db.Collection("users")
	// Uniqueness backstop for racing signups.
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return &mongoUserRepo{col: col}
}

func (r *mongoUserRepo) Create(ctx context.Context, u *models.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, u)
	return err
}

func (r *mongoUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var u models.User
	err = r.col.FindOne(ctx, bson.M{"_id": objID}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &u, err
}

func (r *mongoUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &u, err
}

func (r *mongoUserRepo) FindAdmin(ctx context.Context) (*models.User, error) {
	var u models.User
	err := r.col.FindOne(ctx, bson.M{"role": models.RoleAdmin}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &u, err
}

func (r *mongoUserRepo) PromoteOrCreateAdmin(ctx context.Context, defaults *models.User) (*models.User, error) {
	update := bson.M{
		"$set": bson.M{
			"role":   models.RoleAdmin,
			"status": models.StatusApproved,
		},
		"$setOnInsert": bson.M{
			"_id":         primitive.NewObjectID(),
			"firstName":   defaults.FirstName,
			"lastName":    defaults.LastName,
			"phone":       defaults.Phone,
			"countryCode": defaults.CountryCode,
			"dateOfBirth": defaults.DateOfBirth,
			"gender":      defaults.Gender,
			"address":     defaults.Address,
			"password":    defaults.Password,
			"signupTime":  time.Now().UTC(),
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var u models.User
	err := r.col.FindOneAndUpdate(ctx, bson.M{"email": defaults.Email}, update, opts).Decode(&u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *mongoUserRepo) List(ctx context.Context, page, limit int) ([]models.User, int64, error) {
	filter := bson.M{"role": models.RoleUser}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "signupTime", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	users := make([]models.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *mongoUserRepo) Stats(ctx context.Context) (*UserStats, error) {
	now := time.Now().UTC()
	weekAgo := now.Add(-7 * 24 * time.Hour)
	monthAgo := now.Add(-30 * 24 * time.Hour)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"role": models.RoleUser}}},
		{{Key: "$group", Value: bson.M{
			"_id":        nil,
			"totalUsers": bson.M{"$sum": 1},
			"maleUsers": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$gender", "male"}}, 1, 0},
			}},
			"femaleUsers": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$gender", "female"}}, 1, 0},
			}},
			"otherGender": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$in": bson.A{"$gender", bson.A{"other", "prefer-not-to-say"}}}, 1, 0},
			}},
			"newThisWeek": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$gte": bson.A{"$signupTime", weekAgo}}, 1, 0},
			}},
			"newThisMonth": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$gte": bson.A{"$signupTime", monthAgo}}, 1, 0},
			}},
		}}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []UserStats
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return &UserStats{}, nil
	}
	return &results[0], nil
}

func (r *mongoUserRepo) UpdateStatus(ctx context.Context, id, status string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var u models.User
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{"status": status}}, opts).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *mongoUserRepo) Delete(ctx context.Context, id string) error {
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
