// Package mongostore implements store.Store on MongoDB.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fintrack/internal/logger"
	"fintrack/internal/models"
	"fintrack/internal/store"
)

const (
	transactionsCollection = "transactions"
	categoriesCollection   = "categories"
	budgetsCollection      = "budgets"
)

// Store is a MongoDB-backed store.Store.
type Store struct {
	client       *mongo.Client
	transactions *mongo.Collection
	categories   *mongo.Collection
	budgets      *mongo.Collection
}

// New connects to uri, verifies the connection and ensures indexes on dbName.
func New(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(dbName)
	s := &Store{
		client:       client,
		transactions: db.Collection(transactionsCollection),
		categories:   db.Collection(categoriesCollection),
		budgets:      db.Collection(budgetsCollection),
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	logger.Named("mongostore").Infow("Connected to MongoDB", "database", dbName)
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.budgets.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "category_id", Value: 1}, {Key: "month", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("category_month"),
	})
	if err != nil {
		return fmt.Errorf("failed to create budget index: %w", err)
	}
	_, err = s.transactions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "date", Value: -1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create transaction index: %w", err)
	}
	return nil
}

// transactionQuery translates f into a MongoDB filter document.
func transactionQuery(f store.TransactionFilter) bson.M {
	q := bson.M{}

	date := bson.M{}
	if f.Month != "" {
		date["$regex"] = "^" + regexp.QuoteMeta(f.Month+"-")
	}
	if f.From != "" {
		date["$gte"] = f.From
	}
	if f.To != "" {
		date["$lte"] = f.To
	}
	if len(date) > 0 {
		q["date"] = date
	}

	if f.Type != "" {
		q["type"] = f.Type
	}
	if f.CategoryID != "" {
		q["category_id"] = f.CategoryID
	}
	if f.Search != "" {
		q["description"] = bson.M{"$regex": regexp.QuoteMeta(f.Search), "$options": "i"}
	}
	return q
}

// ListTransactions returns filtered transactions, newest first.
func (s *Store) ListTransactions(ctx context.Context, filter store.TransactionFilter) ([]models.Transaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "created_at", Value: -1}})
	cursor, err := s.transactions.Find(ctx, transactionQuery(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	defer cursor.Close(ctx)

	txs := make([]models.Transaction, 0)
	if err := cursor.All(ctx, &txs); err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}
	return txs, nil
}

// GetTransaction fetches one transaction by id.
func (s *Store) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := s.transactions.FindOne(ctx, bson.M{"_id": id}).Decode(&tx); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	return &tx, nil
}

// InsertTransaction stamps and inserts t.
func (s *Store) InsertTransaction(ctx context.Context, t *models.Transaction) error {
	t.Stamp(time.Now().UTC())
	if _, err := s.transactions.InsertOne(ctx, t); err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// ReplaceTransaction overwrites the mutable fields of t.ID.
func (s *Store) ReplaceTransaction(ctx context.Context, t *models.Transaction) error {
	update := bson.M{"$set": bson.M{
		"amount":      t.Amount,
		"date":        t.Date,
		"description": t.Description,
		"category_id": t.CategoryID,
		"type":        t.Type,
		"updated_at":  time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var stored models.Transaction
	err := s.transactions.FindOneAndUpdate(ctx, bson.M{"_id": t.ID}, update, opts).Decode(&stored)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return store.ErrNotFound
		}
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	*t = stored
	return nil
}

// RemoveTransaction deletes id and reports whether a document was removed.
func (s *Store) RemoveTransaction(ctx context.Context, id string) (bool, error) {
	res, err := s.transactions.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete transaction: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// ListCategories returns the catalog by position.
func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := s.categories.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	defer cursor.Close(ctx)

	cats := make([]models.Category, 0)
	if err := cursor.All(ctx, &cats); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return cats, nil
}

// SeedCategories inserts the categories whose id is not stored yet.
func (s *Store) SeedCategories(ctx context.Context, cats []models.Category) error {
	for _, c := range cats {
		_, err := s.categories.UpdateOne(ctx,
			bson.M{"_id": c.ID},
			bson.M{"$setOnInsert": bson.M{
				"name":     c.Name,
				"color":    c.Color,
				"icon":     c.Icon,
				"position": c.Position,
			}},
			options.Update().SetUpsert(true))
		if err != nil {
			return fmt.Errorf("failed to seed category %s: %w", c.ID, err)
		}
	}
	return nil
}

// ListBudgets returns the budgets of month, or all of them.
func (s *Store) ListBudgets(ctx context.Context, month string) ([]models.Budget, error) {
	filter := bson.M{}
	if month != "" {
		filter["month"] = month
	}
	opts := options.Find().SetSort(bson.D{{Key: "month", Value: 1}, {Key: "category_id", Value: 1}})
	cursor, err := s.budgets.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch budgets: %w", err)
	}
	defer cursor.Close(ctx)

	budgets := make([]models.Budget, 0)
	if err := cursor.All(ctx, &budgets); err != nil {
		return nil, fmt.Errorf("failed to decode budgets: %w", err)
	}
	return budgets, nil
}

// FindBudget returns the budget keyed by (categoryID, month).
func (s *Store) FindBudget(ctx context.Context, categoryID, month string) (*models.Budget, error) {
	var b models.Budget
	err := s.budgets.FindOne(ctx, bson.M{"category_id": categoryID, "month": month}).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find budget: %w", err)
	}
	return &b, nil
}

// InsertBudget stamps and inserts b.
func (s *Store) InsertBudget(ctx context.Context, b *models.Budget) error {
	b.Stamp(time.Now().UTC())
	if _, err := s.budgets.InsertOne(ctx, b); err != nil {
		return fmt.Errorf("failed to insert budget: %w", err)
	}
	return nil
}

// UpdateBudget overwrites the amount of budget b.ID.
func (s *Store) UpdateBudget(ctx context.Context, b *models.Budget) error {
	now := time.Now().UTC()
	res, err := s.budgets.UpdateOne(ctx,
		bson.M{"_id": b.ID},
		bson.M{"$set": bson.M{"amount": b.Amount, "updated_at": now}})
	if err != nil {
		return fmt.Errorf("failed to update budget: %w", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	b.UpdatedAt = now
	return nil
}

// RemoveBudget deletes the budget keyed by (categoryID, month).
func (s *Store) RemoveBudget(ctx context.Context, categoryID, month string) (bool, error) {
	res, err := s.budgets.DeleteOne(ctx, bson.M{"category_id": categoryID, "month": month})
	if err != nil {
		return false, fmt.Errorf("failed to delete budget: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
