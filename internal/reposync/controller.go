package reposync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/five82/repolist/internal/api"
	"github.com/five82/repolist/internal/collection"
)

// ErrStaleRecord is returned by LikeRepository in strict mode when the
// service answers with a record the collection does not contain.
var ErrStaleRecord = errors.New("like response does not match any repository")

// Options configure a Controller.
type Options struct {
	Logger *slog.Logger
	// StrictLikes turns an unmatched like response into ErrStaleRecord
	// instead of a logged no-op. The collection is unchanged either way.
	StrictLikes bool
}

// Controller runs one remote call per user action and feeds the response to
// the store. It holds no state of its own.
type Controller struct {
	service api.Service
	store   *collection.Store
	logger  *slog.Logger
	strict  bool
}

// New builds a Controller over service and store.
func New(service api.Service, store *collection.Store, opts Options) (*Controller, error) {
	if service == nil {
		return nil, fmt.Errorf("sync controller requires an api service")
	}
	if store == nil {
		return nil, fmt.Errorf("sync controller requires a store")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{
		service: service,
		store:   store,
		logger:  logger,
		strict:  opts.StrictLikes,
	}, nil
}

// Store returns the store the controller feeds.
func (c *Controller) Store() *collection.Store {
	return c.store
}

// LoadAll fetches the full collection and replaces the local one with it.
// Calling it again replaces rather than accumulates.
func (c *Controller) LoadAll(ctx context.Context) error {
	ctx, log, start := c.begin(ctx, "load_all")

	records, err := c.service.ListRepositories(ctx)
	if err != nil {
		log.Warn("load failed", "err", err, "duration", time.Since(start))
		return fmt.Errorf("load repositories: %w", err)
	}
	snap := c.store.Initialize(records)
	log.Info("loaded", "count", snap.Items.Len(), "version", snap.Version, "duration", time.Since(start))
	return nil
}

// AddRepository creates a repository from payload and appends the record
// the service returns.
func (c *Controller) AddRepository(ctx context.Context, payload api.NewRepository) (api.Repository, error) {
	ctx, log, start := c.begin(ctx, "add")

	created, err := c.service.CreateRepository(ctx, payload)
	if err != nil {
		log.Warn("create failed", "title", payload.Title, "err", err, "duration", time.Since(start))
		return api.Repository{}, fmt.Errorf("create repository: %w", err)
	}
	snap, err := c.store.Append(created)
	if err != nil {
		log.Error("server returned an id already in the collection", "id", created.ID, "err", err)
		return created, fmt.Errorf("create repository: %w", err)
	}
	log.Info("created", "id", created.ID, "version", snap.Version, "duration", time.Since(start))
	return created, nil
}

// LikeRepository likes id and merges the updated record the service returns.
func (c *Controller) LikeRepository(ctx context.Context, id api.ID) (api.Repository, error) {
	ctx, log, start := c.begin(ctx, "like")
	log = log.With("id", id)

	updated, err := c.service.LikeRepository(ctx, id)
	if err != nil {
		log.Warn("like failed", "err", err, "duration", time.Since(start))
		return api.Repository{}, fmt.Errorf("like repository %s: %w", id, err)
	}
	snap, ok := c.store.MergeUpdate(updated)
	if !ok {
		log.Warn("like response matched no repository", "response_id", updated.ID)
		if c.strict {
			return updated, fmt.Errorf("like repository %s: %w", id, ErrStaleRecord)
		}
		return updated, nil
	}
	log.Info("liked", "likes", updated.Likes, "version", snap.Version, "duration", time.Since(start))
	return updated, nil
}

func (c *Controller) begin(ctx context.Context, op string) (context.Context, *slog.Logger, time.Time) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, rid := api.WithRequestID(ctx)
	return ctx, c.logger.With("op", op, "request_id", rid), time.Now()
}
