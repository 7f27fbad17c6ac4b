package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/yoockh/telepatia/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const MessagesCollection = "messages"

type MessageRepository interface {
	Insert(ctx context.Context, m *models.Message) (string, error)
}

type messageRepo struct {
	col *mongo.Collection
}

func NewMessageRepo(db *mongo.Database) MessageRepository {
	return &messageRepo{col: db.Collection(MessagesCollection)}
}

func (r *messageRepo) Insert(ctx context.Context, m *models.Message) (string, error) {
	now := time.Now().UTC()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = now
	}

	res, err := r.col.InsertOne(ctx, m)
	if err != nil {
		return "", err
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("unexpected inserted id type")
	}
	m.ID = id
	return id.Hex(), nil
}
