package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	mongorepo "github.com/yoockh/telepatia/internal/repositories/mongo"
)

const (
	DBConnected    = "connected"
	DBDisconnected = "disconnected"
)

type HealthService interface {
	DBStatus(ctx context.Context) string
}

type healthService struct {
	db      mongorepo.Pinger
	timeout time.Duration
	log     *logrus.Logger
}

func NewHealthService(db mongorepo.Pinger, l *logrus.Logger) HealthService {
	if l == nil {
		l = logrus.StandardLogger()
	}
	return &healthService{db: db, timeout: 3 * time.Second, log: l}
}

// DBStatus never fails; any ping error is reported as disconnected.
func (s *healthService) DBStatus(ctx context.Context) string {
	if s.db == nil {
		return DBDisconnected
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.db.Ping(ctx); err != nil {
		s.log.WithError(err).Error("database ping failed")
		return DBDisconnected
	}
	return DBConnected
}
