package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/k8automation/marketing-api/internal/core/domain"
)

const leadCollection = "leads"

type MongoLeadRepository struct {
	coll *mongo.Collection
}

func NewLeadRepository(db *mongo.Database) *MongoLeadRepository {
	return &MongoLeadRepository{coll: db.Collection(leadCollection)}
}

type leadDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Phone     string             `bson:"phone,omitempty"`
	Company   string             `bson:"company,omitempty"`
	Service   string             `bson:"service"`
	Budget    string             `bson:"budget,omitempty"`
	Message   string             `bson:"message"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d leadDoc) toDomain() domain.Lead {
	return domain.Lead{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Phone:     d.Phone,
		Company:   d.Company,
		Service:   d.Service,
		Budget:    d.Budget,
		Message:   d.Message,
		Status:    domain.LeadStatus(d.Status),
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

// EnsureIndexes creates the createdAt index backing newest-first listing.
func (r *MongoLeadRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create leads created_at index: %w", err)
	}
	return nil
}

func (r *MongoLeadRepository) Insert(ctx context.Context, lead *domain.Lead) (*domain.Lead, error) {
	doc := leadDoc{
		Name:      lead.Name,
		Email:     lead.Email,
		Phone:     lead.Phone,
		Company:   lead.Company,
		Service:   lead.Service,
		Budget:    lead.Budget,
		Message:   lead.Message,
		Status:    string(lead.Status),
		CreatedAt: lead.CreatedAt,
		UpdatedAt: lead.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert lead: %w", err)
	}

	created := *lead
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoLeadRepository) Find(ctx context.Context, status domain.LeadStatus) ([]domain.Lead, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = string(status)
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find leads: %w", err)
	}
	defer cur.Close(ctx)

	leads := make([]domain.Lead, 0)
	for cur.Next(ctx) {
		var doc leadDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode lead: %w", err)
		}
		leads = append(leads, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate leads: %w", err)
	}
	return leads, nil
}

func (r *MongoLeadRepository) FindByID(ctx context.Context, id string) (*domain.Lead, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrLeadNotFound
	}

	var doc leadDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrLeadNotFound
		}
		return nil, fmt.Errorf("find lead: %w", err)
	}
	lead := doc.toDomain()
	return &lead, nil
}

func (r *MongoLeadRepository) FindLatestByEmail(ctx context.Context, email string) (*domain.Lead, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var doc leadDoc
	if err := r.coll.FindOne(ctx, bson.M{"email": email}, opts).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrLeadNotFound
		}
		return nil, fmt.Errorf("find latest lead: %w", err)
	}
	lead := doc.toDomain()
	return &lead, nil
}

func (r *MongoLeadRepository) UpdateStatus(ctx context.Context, id string, status domain.LeadStatus) (*domain.Lead, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrLeadNotFound
	}

	update := bson.M{"$set": bson.M{
		"status":     string(status),
		"updated_at": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc leadDoc
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrLeadNotFound
		}
		return nil, fmt.Errorf("update lead status: %w", err)
	}
	lead := doc.toDomain()
	return &lead, nil
}

func (r *MongoLeadRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrLeadNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrLeadNotFound
	}
	return nil
}
