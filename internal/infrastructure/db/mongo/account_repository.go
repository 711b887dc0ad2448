package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dosapp/discovery-api/internal/core/domain"
)

const collectionAccounts = "accounts"

type AccountRepository struct {
	col *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{col: db.Collection(collectionAccounts)}
}

type accountDoc struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty"`
	ExternalID          string             `bson:"external_id,omitempty"`
	Email               string             `bson:"email"`
	Name                string             `bson:"name"`
	Photo               string             `bson:"photo,omitempty"`
	Phone               string             `bson:"phone,omitempty"`
	Role                string             `bson:"role"`
	SubscriptionPlan    string             `bson:"subscription_plan"`
	SubscriptionExpiry  time.Time          `bson:"subscription_expiry"`
	ShopProfileComplete bool               `bson:"shop_profile_complete"`
	CreatedAt           time.Time          `bson:"created_at"`
	UpdatedAt           time.Time          `bson:"updated_at"`
}

func (d *accountDoc) toDomain() *domain.Account {
	return &domain.Account{
		ID:                  d.ID.Hex(),
		ExternalID:          d.ExternalID,
		Email:               d.Email,
		Name:                d.Name,
		Photo:               d.Photo,
		Phone:               d.Phone,
		Role:                d.Role,
		SubscriptionPlan:    d.SubscriptionPlan,
		SubscriptionExpiry:  d.SubscriptionExpiry,
		ShopProfileComplete: d.ShopProfileComplete,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
}

func (r *AccountRepository) FindByExternalID(ctx context.Context, externalID string) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc accountDoc
	err := r.col.FindOne(ctx, bson.M{"external_id": externalID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}

	var doc accountDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := accountDoc{
		ExternalID:          account.ExternalID,
		Email:               account.Email,
		Name:                account.Name,
		Photo:               account.Photo,
		Phone:               account.Phone,
		Role:                account.Role,
		SubscriptionPlan:    account.SubscriptionPlan,
		SubscriptionExpiry:  account.SubscriptionExpiry,
		ShopProfileComplete: account.ShopProfileComplete,
		CreatedAt:           account.CreatedAt,
		UpdatedAt:           account.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAccountExists
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	created := *account
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *AccountRepository) SetRole(ctx context.Context, id, role string) error {
	return r.setField(ctx, id, bson.M{"role": role})
}

func (r *AccountRepository) SetShopProfileComplete(ctx context.Context, id string, complete bool) error {
	return r.setField(ctx, id, bson.M{"shop_profile_complete": complete})
}

func (r *AccountRepository) setField(ctx context.Context, id string, fields bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAccountNotFound
	}

	fields["updated_at"] = time.Now().UTC()
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// EnsureIndexes creates the uniqueness constraints on the accounts
// collection. external_id is sparse so legacy password accounts without an
// external identity do not collide on the missing value.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "external_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
