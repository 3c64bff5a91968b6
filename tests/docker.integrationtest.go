//go:build integration

// Package tests contains helpers for integration tests that need real infrastructure, started in docker.
package tests

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
)

var ErrDockerFailure = errors.New("docker failure")

// RetryFunc is used to connect to the container.
// The returned func is called by dockertest with an exponential backoff,
// until the application inside the container accepts connections or the timeout is reached.
type RetryFunc func(resource *dockertest.Resource) func() error

const dockerTimeout = 120 * time.Second

// Container is a running docker container.
// It is shared between all callers that started it with the same name.
type Container struct {
	pool     *dockertest.Pool
	resource *dockertest.Resource
}

//nolint:gochecknoglobals // containers are shared between parallel tests of a package.
var (
	muContainers = sync.Mutex{}
	containers   = map[string]*sharedContainer{}
)

type sharedContainer struct {
	container *Container
	users     int
}

// StartContainer pulls the image and starts a container with runOptions.
// If runOptions.Name is set and a container of that name was started before,
// the running container is returned instead of starting a new one.
func StartContainer(runOptions *dockertest.RunOptions, retryFunc RetryFunc) (*Container, error) {
	if runOptions == nil {
		return nil, fmt.Errorf("%w: invalid run options", ErrDockerFailure)
	}

	if retryFunc == nil {
		return nil, fmt.Errorf("%w: invalid retry func", ErrDockerFailure)
	}

	muContainers.Lock()
	defer muContainers.Unlock()

	if shared, ok := containers[runOptions.Name]; ok && runOptions.Name != "" {
		shared.users++

		return shared.container, nil
	}

	pool, err := dockertest.NewPool("") // sensible defaults on windows (tcp/http) and linux/osx (socket)
	if err != nil {
		return nil, fmt.Errorf("%w: could not create new pool: %v", ErrDockerFailure, err)
	}

	if err = pool.Client.Ping(); err != nil {
		return nil, fmt.Errorf("%w: could not connect to docker: %v", ErrDockerFailure, err)
	}

	resource, err := pool.RunWithOptions(runOptions, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no", MaximumRetryCount: 0}
	})
	if err != nil {
		return nil, fmt.Errorf("%w: could not start resource: %v", ErrDockerFailure, err)
	}

	_ = resource.Expire(uint(dockerTimeout.Seconds())) // hard kill, in case Cleanup is never called

	pool.MaxWait = dockerTimeout
	if err = pool.Retry(retryFunc(resource)); err != nil {
		_ = pool.Purge(resource)

		return nil, fmt.Errorf("%w: could not connect to container: %v", ErrDockerFailure, err)
	}

	container := &Container{pool: pool, resource: resource}
	if runOptions.Name != "" {
		containers[runOptions.Name] = &sharedContainer{container: container, users: 1}
	}

	return container, nil
}

// Cleanup stops and removes the container, once the last user of a shared container called it.
func (c *Container) Cleanup() error {
	muContainers.Lock()
	defer muContainers.Unlock()

	for name, shared := range containers {
		if shared.container != c {
			continue
		}

		shared.users--
		if shared.users > 0 {
			return nil
		}

		delete(containers, name)
	}

	if err := c.pool.Purge(c.resource); err != nil {
		return fmt.Errorf("%w: could not purge resource: %v", ErrDockerFailure, err)
	}

	return nil
}

// Port returns the host port mapped to the given container port, e.g. "5432/tcp".
func (c *Container) Port(id string) string {
	return c.resource.GetPort(id)
}
