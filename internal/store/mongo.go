package store

import (
	"context"
	"log"
	"sync"
	"time"

	"procureflow-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Mongo-backed stores, one per collection. Each keeps the last good List
// snapshot and serves it when the query fails, so list views degrade to
// stale data instead of surfacing transport errors.

type MongoRequestStore struct {
	coll   *mongo.Collection
	mu     sync.RWMutex
	cached []models.ProcurementRequest
}

func NewMongoRequestStore(db *mongo.Database) *MongoRequestStore {
	return &MongoRequestStore{coll: db.Collection("procurement_requests")}
}

func (s *MongoRequestStore) List(ctx context.Context) []models.ProcurementRequest {
	var requests []models.ProcurementRequest
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err == nil {
		err = cursor.All(ctx, &requests)
		cursor.Close(ctx)
	}
	if err != nil {
		log.Printf("Failed to list procurement requests, serving cached snapshot: %v", err)
		s.mu.RLock()
		defer s.mu.RUnlock()
		return append([]models.ProcurementRequest{}, s.cached...)
	}
	for i := range requests {
		requests[i] = NormalizeRequest(requests[i])
	}
	s.mu.Lock()
	s.cached = requests
	s.mu.Unlock()
	return append([]models.ProcurementRequest{}, requests...)
}

func (s *MongoRequestStore) Create(ctx context.Context, req models.ProcurementRequest) (models.ProcurementRequest, error) {
	req = NormalizeRequest(req)
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt
	result, err := s.coll.InsertOne(ctx, req)
	if err != nil {
		return models.ProcurementRequest{}, err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		req.ID = oid
	}
	return req, nil
}

func (s *MongoRequestStore) Update(ctx context.Context, requestID string, fields Fields) error {
	return updateByKey(ctx, s.coll, "requestID", requestID, fields)
}

type MongoRFQStore struct {
	coll   *mongo.Collection
	mu     sync.RWMutex
	cached []models.RFQ
}

func NewMongoRFQStore(db *mongo.Database) *MongoRFQStore {
	return &MongoRFQStore{coll: db.Collection("rfqs")}
}

func (s *MongoRFQStore) List(ctx context.Context) []models.RFQ {
	var rfqs []models.RFQ
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err == nil {
		err = cursor.All(ctx, &rfqs)
		cursor.Close(ctx)
	}
	if err != nil {
		log.Printf("Failed to list RFQs, serving cached snapshot: %v", err)
		s.mu.RLock()
		defer s.mu.RUnlock()
		return append([]models.RFQ{}, s.cached...)
	}
	for i := range rfqs {
		rfqs[i] = NormalizeRFQ(rfqs[i])
	}
	s.mu.Lock()
	s.cached = rfqs
	s.mu.Unlock()
	return append([]models.RFQ{}, rfqs...)
}

func (s *MongoRFQStore) Create(ctx context.Context, rfq models.RFQ) (models.RFQ, error) {
	rfq = NormalizeRFQ(rfq)
	rfq.CreatedAt = time.Now()
	rfq.UpdatedAt = rfq.CreatedAt
	result, err := s.coll.InsertOne(ctx, rfq)
	if err != nil {
		return models.RFQ{}, err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		rfq.ID = oid
	}
	rfq.SyncState = models.SyncConfirmed
	return rfq, nil
}

func (s *MongoRFQStore) Update(ctx context.Context, rfqID string, fields Fields) error {
	return updateByKey(ctx, s.coll, "rfqID", rfqID, fields)
}

type MongoOrderStore struct {
	coll   *mongo.Collection
	mu     sync.RWMutex
	cached []models.Order
}

func NewMongoOrderStore(db *mongo.Database) *MongoOrderStore {
	return &MongoOrderStore{coll: db.Collection("orders")}
}

func (s *MongoOrderStore) List(ctx context.Context) []models.Order {
	var orders []models.Order
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err == nil {
		err = cursor.All(ctx, &orders)
		cursor.Close(ctx)
	}
	if err != nil {
		log.Printf("Failed to list orders, serving cached snapshot: %v", err)
		s.mu.RLock()
		defer s.mu.RUnlock()
		return append([]models.Order{}, s.cached...)
	}
	for i := range orders {
		orders[i] = NormalizeOrder(orders[i])
	}
	s.mu.Lock()
	s.cached = orders
	s.mu.Unlock()
	return append([]models.Order{}, orders...)
}

func (s *MongoOrderStore) Create(ctx context.Context, order models.Order) (models.Order, error) {
	order = NormalizeOrder(order)
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	result, err := s.coll.InsertOne(ctx, order)
	if err != nil {
		return models.Order{}, err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		order.ID = oid
	}
	return order, nil
}

func (s *MongoOrderStore) Update(ctx context.Context, orderID string, fields Fields) error {
	return updateByKey(ctx, s.coll, "orderID", orderID, fields)
}

func updateByKey(ctx context.Context, coll *mongo.Collection, key, value string, fields Fields) error {
	set := bson.M{"updatedAt": time.Now()}
	for k, v := range fields {
		set[k] = v
	}
	_, err := coll.UpdateOne(ctx, bson.M{key: value}, bson.M{"$set": set})
	return err
}
