package mongo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Hook runs against a freshly connected database, e.g. to create indexes.
type Hook func(ctx context.Context, db *mongo.Database) error

// Handle is a process-wide, lazily connected database handle. The first
// caller of Database connects; later callers reuse the cached database. A
// failed connect is not cached, so the next call tries again.
type Handle struct {
	cfg Config

	mu     sync.Mutex
	client *mongo.Client
	db     *mongo.Database
	hooks  []Hook
}

func NewHandle(cfg Config) *Handle {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Handle{cfg: cfg}
}

// OnConnect registers a hook that runs once after every successful connect.
// Must be called before the first Database call.
func (h *Handle) OnConnect(hook Hook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hooks = append(h.hooks, hook)
}

// Database returns the connected database, connecting on first use.
func (h *Handle) Database(ctx context.Context) (*mongo.Database, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.db != nil {
		return h.db, nil
	}

	client, db, err := Connect(ctx, h.cfg)
	if err != nil {
		return nil, err
	}

	for _, hook := range h.hooks {
		if err := hook(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("mongo on-connect hook: %w", err)
		}
	}

	h.client, h.db = client, db
	return db, nil
}

// Collection is a shortcut for Database(ctx).Collection(name).
func (h *Handle) Collection(ctx context.Context, name string) (*mongo.Collection, error) {
	db, err := h.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(name), nil
}

// Ping checks connectivity, connecting first if needed.
func (h *Handle) Ping(ctx context.Context) error {
	db, err := h.Database(ctx)
	if err != nil {
		return err
	}
	pingCtx, cancel := context.WithTimeout(ctx, h.cfg.Timeout)
	defer cancel()
	return db.Client().Ping(pingCtx, nil)
}

// Close disconnects the client if one was ever opened.
func (h *Handle) Close(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.client == nil {
		return nil
	}
	err := h.client.Disconnect(ctx)
	h.client, h.db = nil, nil
	return err
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	if cfg.URI == "" {
		return nil, nil, errors.New("mongo connect: empty URI")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}
