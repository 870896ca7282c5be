package monitor

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Probe answers whether the durable store is reachable right now. Nothing is
// cached: availability can flip at any point during the process lifetime
// (Mongo coming up after the server, or dropping mid-session), so every
// repository call pays for a fresh ping.
type Probe struct {
	client  *mongo.Client
	timeout time.Duration
	logger  *zap.Logger
}

// New builds a Probe. client may be nil when no database is configured; the
// probe then always answers false.
func New(client *mongo.Client, timeout time.Duration, logger *zap.Logger) *Probe {
	if timeout <= 0 {
		timeout = time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Probe{
		client:  client,
		timeout: timeout,
		logger:  logger,
	}
}

// Available reports current liveness of the Mongo connection.
func (p *Probe) Available(ctx context.Context) bool {
	if p == nil || p.client == nil {
		return false
	}
	pingCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.client.Ping(pingCtx, readpref.Primary()); err != nil {
		p.logger.Debug("mongodb ping failed", zap.Error(err))
		return false
	}
	return true
}

// Configured reports whether a durable store was configured at all,
// independent of current reachability.
func (p *Probe) Configured() bool {
	return p != nil && p.client != nil
}
