package suite

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-web/internal/repository/storage"
)

const (
	expireDuration  = 300
	maxWaitDuration = 120 * time.Second
	testTimeout     = 30 * time.Second
)

const (
	redisPort  = "6379/tcp"
	redisImage = "redis"
	redisTag   = "alpine"
)

var errDockerUnavailable = errors.New("docker is not available")

// container - the redis instance shared by every test of a package.
type container struct {
	pool     *dockertest.Pool
	resource *dockertest.Resource
	addr     string
	err      error
}

var (
	shared     *container
	sharedOnce sync.Once
)

// Suite - a test with its own empty redis database.
type Suite struct {
	*testing.T

	Storage *redis.Client
}

// New - starts the shared container on first use and returns a flushed client
// for t. Tests are skipped when docker cannot be reached.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	sharedOnce.Do(func() {
		shared = startRedis()
	})

	if errors.Is(shared.err, errDockerUnavailable) {
		t.Skipf("skipping redis test: %v", shared.err)
	}

	if shared.err != nil {
		t.Fatalf("could not start redis: %v", shared.err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	t.Cleanup(cancel)

	client, err := storage.NewRedisStorage(ctx, shared.addr)
	if err != nil {
		t.Fatalf("could not connect to redis: %v", err)
	}

	t.Cleanup(func() {
		_ = client.Close()
	})

	if err = client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("could not flush database: %v", err)
	}

	return ctx, &Suite{
		T:       t,
		Storage: client,
	}
}

// Purge - removes the shared container. Call it from TestMain after m.Run.
func Purge() {
	if shared == nil || shared.resource == nil {
		return
	}

	_ = shared.pool.Purge(shared.resource)
}

func startRedis() *container {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return &container{err: fmt.Errorf("%w: %w", errDockerUnavailable, err)}
	}

	if err = pool.Client.Ping(); err != nil {
		return &container{err: fmt.Errorf("%w: %w", errDockerUnavailable, err)}
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: redisImage,
		Tag:        redisTag,
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return &container{err: fmt.Errorf("could not start resource: %w", err)}
	}

	// hard kill in case Purge never runs
	_ = resource.Expire(expireDuration)

	started := &container{
		pool:     pool,
		resource: resource,
		addr:     resource.GetHostPort(redisPort),
	}

	pool.MaxWait = maxWaitDuration

	// the server in the container may not accept connections yet
	if err = pool.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		client, err := storage.NewRedisStorage(ctx, started.addr)
		if err != nil {
			return err
		}

		return client.Close()
	}); err != nil {
		_ = pool.Purge(resource)
		return &container{err: fmt.Errorf("could not connect to redis: %w", err)}
	}

	return started
}
