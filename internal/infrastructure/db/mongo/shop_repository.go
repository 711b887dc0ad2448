package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dosapp/discovery-api/internal/core/domain"
	"github.com/dosapp/discovery-api/internal/core/ports"
)

const collectionShops = "shops"

type ShopRepository struct {
	col *mongo.Collection
}

func NewShopRepository(db *mongo.Database) *ShopRepository {
	return &ShopRepository{col: db.Collection(collectionShops)}
}

type shopDoc struct {
	ID        primitive.ObjectID      `bson:"_id,omitempty"`
	OwnerID   string                  `bson:"owner_id"`
	Name      string                  `bson:"name"`
	Category  string                  `bson:"category"`
	Area      string                  `bson:"area"`
	City      string                  `bson:"city"`
	Location  domain.GeoPoint         `bson:"location"`
	OpenTime  string                  `bson:"open_time,omitempty"`
	CloseTime string                  `bson:"close_time,omitempty"`
	IsOpen    bool                    `bson:"is_open"`
	Contact   domain.Contact          `bson:"contact"`
	Offer     float64                 `bson:"offer"`
	Notice    string                  `bson:"notice,omitempty"`
	Rating    string                  `bson:"rating,omitempty"`
	Products  []domain.ProductSummary `bson:"products"`
	CreatedAt time.Time               `bson:"created_at"`
	UpdatedAt time.Time               `bson:"updated_at"`
}

func (d *shopDoc) toDomain() *domain.Shop {
	products := d.Products
	if products == nil {
		products = []domain.ProductSummary{}
	}
	return &domain.Shop{
		ID:        d.ID.Hex(),
		OwnerID:   d.OwnerID,
		Name:      d.Name,
		Category:  d.Category,
		Area:      d.Area,
		City:      d.City,
		Location:  d.Location,
		OpenTime:  d.OpenTime,
		CloseTime: d.CloseTime,
		IsOpen:    d.IsOpen,
		Contact:   d.Contact,
		Offer:     d.Offer,
		Notice:    d.Notice,
		Rating:    d.Rating,
		Products:  products,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func fromDomainShop(s *domain.Shop) shopDoc {
	return shopDoc{
		OwnerID:   s.OwnerID,
		Name:      s.Name,
		Category:  s.Category,
		Area:      s.Area,
		City:      s.City,
		Location:  s.Location,
		OpenTime:  s.OpenTime,
		CloseTime: s.CloseTime,
		IsOpen:    s.IsOpen,
		Contact:   s.Contact,
		Offer:     s.Offer,
		Notice:    s.Notice,
		Rating:    s.Rating,
		Products:  s.Products,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// Create inserts a new shop document. The unique owner_id index turns a
// concurrent double-create into a duplicate key error, so the
// one-shop-per-owner invariant holds without a transaction.
func (r *ShopRepository) Create(ctx context.Context, shop *domain.Shop) (*domain.Shop, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, fromDomainShop(shop))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateShop
		}
		return nil, fmt.Errorf("insert shop: %w", err)
	}

	created := *shop
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ShopRepository) FindByID(ctx context.Context, id string) (*domain.Shop, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrShopNotFound
	}

	var doc shopDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrShopNotFound
		}
		return nil, fmt.Errorf("find shop: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ShopRepository) FindByOwner(ctx context.Context, ownerID string) (*domain.Shop, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc shopDoc
	if err := r.col.FindOne(ctx, bson.M{"owner_id": ownerID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrShopNotFound
		}
		return nil, fmt.Errorf("find shop by owner: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ShopRepository) ExistsByOwner(ctx context.Context, ownerID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"owner_id": ownerID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count shops by owner: %w", err)
	}
	return n > 0, nil
}

// Update applies the patch to the owner's shop. Nil patch fields are left
// out of the $set document so stored values survive partial updates.
func (r *ShopRepository) Update(ctx context.Context, ownerID string, patch ports.ShopPatch) (*domain.Shop, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Area != nil {
		set["area"] = *patch.Area
	}
	if patch.City != nil {
		set["city"] = *patch.City
	}
	if patch.Phone != nil {
		set["contact.phone"] = *patch.Phone
	}
	if patch.Address != nil {
		set["contact.address"] = *patch.Address
	}
	if patch.Notice != nil {
		set["notice"] = *patch.Notice
	}
	if patch.Offer != nil {
		set["offer"] = *patch.Offer
	}
	if patch.OpenTime != nil {
		set["open_time"] = *patch.OpenTime
	}
	if patch.CloseTime != nil {
		set["close_time"] = *patch.CloseTime
	}
	if patch.IsOpen != nil {
		set["is_open"] = *patch.IsOpen
	}
	if patch.Location != nil {
		set["location"] = *patch.Location
	}

	after := options.After
	var doc shopDoc
	err := r.col.FindOneAndUpdate(
		ctx,
		bson.M{"owner_id": ownerID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrShopNotFound
		}
		return nil, fmt.Errorf("update shop: %w", err)
	}
	return doc.toDomain(), nil
}

// List applies the conjunctive listing filters. The text filter is a
// case-insensitive substring match (escaped, no fuzzy semantics) over shop
// name, area, city, and embedded product names.
func (r *ShopRepository) List(ctx context.Context, filter ports.ListShopsFilter) ([]*domain.Shop, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.OfferOnly {
		query["offer"] = bson.M{"$gt": 0}
	}
	if filter.Query != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Query), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"area": pattern},
			bson.M{"city": pattern},
			bson.M{"products.name": pattern},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list shops: %w", err)
	}
	defer cur.Close(ctx)

	return decodeShops(ctx, cur)
}

// Nearby runs a $nearSphere query against the 2dsphere index. Mongo returns
// matches ordered by ascending distance; $maxDistance is inclusive at the
// boundary.
func (r *ShopRepository) Nearby(ctx context.Context, filter ports.NearbyFilter) ([]*domain.Shop, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{
		"location": bson.M{
			"$nearSphere": bson.M{
				"$geometry": bson.M{
					"type":        "Point",
					"coordinates": bson.A{filter.Lng, filter.Lat},
				},
				"$maxDistance": filter.RadiusMeters,
			},
		},
	}

	opts := options.Find()
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("nearby shops: %w", err)
	}
	defer cur.Close(ctx)

	return decodeShops(ctx, cur)
}

func (r *ShopRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count shops: %w", err)
	}
	return n, nil
}

func (r *ShopRepository) AddProductSummary(ctx context.Context, shopID string, summary domain.ProductSummary) error {
	return r.updateSummaries(ctx, shopID, bson.M{"$push": bson.M{"products": summary}})
}

func (r *ShopRepository) RemoveProductSummary(ctx context.Context, shopID, productName string) error {
	return r.updateSummaries(ctx, shopID, bson.M{"$pull": bson.M{"products": bson.M{"name": productName}}})
}

func (r *ShopRepository) updateSummaries(ctx context.Context, shopID string, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(shopID)
	if err != nil {
		return domain.ErrShopNotFound
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update product summaries: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrShopNotFound
	}
	return nil
}

// EnsureIndexes creates the owner uniqueness constraint and the geospatial
// index the nearby path depends on.
func (r *ShopRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "location", Value: "2dsphere"}},
		},
		{
			Keys: bson.D{{Key: "category", Value: 1}},
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func decodeShops(ctx context.Context, cur *mongo.Cursor) ([]*domain.Shop, error) {
	shops := make([]*domain.Shop, 0)
	for cur.Next(ctx) {
		var doc shopDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode shop: %w", err)
		}
		shops = append(shops, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate shops: %w", err)
	}
	return shops, nil
}
