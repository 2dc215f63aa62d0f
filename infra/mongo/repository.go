package mongo

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"receptbox/domain"
)

const (
	recipesCollection  = "recipes"
	commentsCollection = "comments"

	opTimeout = 5 * time.Second
)

type MongoRepository struct {
	client   *mongo.Client
	database string
}

func NewMongoRepository(uri, database string) *MongoRepository {
	clientOptions := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(10 * time.Second).
		SetMaxPoolSize(15).
		SetMinPoolSize(1)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		panic(fmt.Errorf("failed to connect to mongodb: %w", err))
	}

	if err := client.Ping(ctx, nil); err != nil {
		panic(fmt.Errorf("failed to ping mongodb: %w", err))
	}

	return &MongoRepository{
		client:   client,
		database: database,
	}
}

func (r *MongoRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *MongoRepository) recipes() *mongo.Collection {
	return r.client.Database(r.database).Collection(recipesCollection)
}

func (r *MongoRepository) comments() *mongo.Collection {
	return r.client.Database(r.database).Collection(commentsCollection)
}

// recipeRecord is the raw stored shape. Older records carry rating as a
// string or double and may lack created_at; toDomain collapses the drift
// into the one canonical shape.
type recipeRecord struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Ingredient   string             `bson:"ingredient"`
	URL          string             `bson:"url"`
	Rating       interface{}        `bson:"rating"`
	CommentCount int                `bson:"comment_count"`
	CreatedAt    *time.Time         `bson:"created_at,omitempty"`
}

func (rec recipeRecord) toDomain() domain.Recipe {
	return domain.Recipe{
		ID:           rec.ID.Hex(),
		Title:        rec.Title,
		Ingredient:   rec.Ingredient,
		URL:          rec.URL,
		Rating:       coerceRating(rec.Rating),
		CommentCount: rec.CommentCount,
		CreatedAt:    rec.CreatedAt,
	}
}

// coerceRating normalizes the rating to the closed ordinal scale 1..3 no
// matter how it was stored. Missing or unparseable values fall to 1.
func coerceRating(v interface{}) int {
	rating := 1

	switch n := v.(type) {
	case int:
		rating = n
	case int32:
		rating = int(n)
	case int64:
		rating = int(n)
	case float64:
		rating = int(n)
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			rating = parsed
		}
	}

	if rating < 1 {
		rating = 1
	}
	if rating > 3 {
		rating = 3
	}
	return rating
}

type commentRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	RecipeID  string             `bson:"recipe_id"`
	Text      string             `bson:"text"`
	Timestamp time.Time          `bson:"timestamp"`
}

func (rec commentRecord) toDomain() domain.Comment {
	return domain.Comment{
		ID:        rec.ID.Hex(),
		RecipeID:  rec.RecipeID,
		Text:      rec.Text,
		Timestamp: rec.Timestamp,
	}
}

func (r *MongoRepository) GetRecipes(ctx context.Context) ([]domain.Recipe, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cursor, err := r.recipes().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	recipes := make([]domain.Recipe, 0)
	for cursor.Next(ctx) {
		var rec recipeRecord
		if err := cursor.Decode(&rec); err != nil {
			return nil, err
		}
		recipes = append(recipes, rec.toDomain())
	}

	return recipes, cursor.Err()
}

func (r *MongoRepository) GetRecipe(ctx context.Context, id string) (domain.Recipe, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A malformed id can never match a stored document.
		return domain.Recipe{}, mongo.ErrNoDocuments
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var rec recipeRecord
	if err := r.recipes().FindOne(ctx, bson.M{"_id": objectID}).Decode(&rec); err != nil {
		return domain.Recipe{}, err
	}

	return rec.toDomain(), nil
}

func (r *MongoRepository) CreateRecipe(ctx context.Context, recipe domain.Recipe) (domain.Recipe, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	doc := bson.M{
		"title":         recipe.Title,
		"ingredient":    recipe.Ingredient,
		"url":           recipe.URL,
		"rating":        recipe.Rating,
		"comment_count": 0,
	}
	if recipe.CreatedAt != nil {
		doc["created_at"] = *recipe.CreatedAt
	}

	result, err := r.recipes().InsertOne(ctx, doc)
	if err != nil {
		return domain.Recipe{}, err
	}

	recipe.ID = result.InsertedID.(primitive.ObjectID).Hex()
	return recipe, nil
}

func (r *MongoRepository) GetCommentsByRecipeID(ctx context.Context, recipeID string) ([]domain.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	cursor, err := r.comments().Find(ctx, bson.M{"recipe_id": recipeID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	comments := make([]domain.Comment, 0)
	for cursor.Next(ctx) {
		var rec commentRecord
		if err := cursor.Decode(&rec); err != nil {
			return nil, err
		}
		comments = append(comments, rec.toDomain())
	}

	return comments, cursor.Err()
}

func (r *MongoRepository) CreateComment(ctx context.Context, recipeID, text string, timestamp time.Time) (domain.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	result, err := r.comments().InsertOne(ctx, bson.M{
		"recipe_id": recipeID,
		"text":      text,
		"timestamp": timestamp,
	})
	if err != nil {
		return domain.Comment{}, err
	}

	return domain.Comment{
		ID:        result.InsertedID.(primitive.ObjectID).Hex(),
		RecipeID:  recipeID,
		Text:      text,
		Timestamp: timestamp,
	}, nil
}

func (r *MongoRepository) DeleteComment(ctx context.Context, recipeID, commentID string) error {
	objectID, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return mongo.ErrNoDocuments
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	result, err := r.comments().DeleteOne(ctx, bson.M{"_id": objectID, "recipe_id": recipeID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *MongoRepository) UpdateCommentCount(ctx context.Context, recipeID string, delta int) error {
	objectID, err := primitive.ObjectIDFromHex(recipeID)
	if err != nil {
		return mongo.ErrNoDocuments
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	result, err := r.recipes().UpdateByID(ctx, objectID, bson.M{
		"$inc": bson.M{"comment_count": delta},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}
