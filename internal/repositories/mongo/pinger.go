package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Pinger reports whether the document store answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

type clientPinger struct {
	c *mongo.Client
}

func NewPinger(c *mongo.Client) Pinger {
	return &clientPinger{c: c}
}

func (p *clientPinger) Ping(ctx context.Context) error {
	return p.c.Ping(ctx, readpref.Primary())
}
