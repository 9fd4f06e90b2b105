package commands

import (
	"context"
	"sync"

	"github.com/doeshing/fakenews-go/internal/app"
	"github.com/doeshing/fakenews-go/internal/domain"
	configinfra "github.com/doeshing/fakenews-go/internal/infrastructure/config"
)

// Runtime builds the container on first use, so commands that only read
// configuration work before any artifact exists.
type Runtime struct {
	Options app.Options

	once      sync.Once
	container *app.Container
	err       error
}

// Container returns the shared container, building it once.
func (r *Runtime) Container(ctx context.Context) (*app.Container, error) {
	r.once.Do(func() {
		r.container, r.err = app.BuildContainer(ctx, r.Options)
	})
	return r.container, r.err
}

// Config loads configuration only.
func (r *Runtime) Config(ctx context.Context) (*configinfra.FileLoader, domain.Config, error) {
	return app.LoadConfig(ctx, r.Options)
}

// Close releases the container if one was built.
func (r *Runtime) Close() error {
	if r.container == nil {
		return nil
	}
	return r.container.Close()
}
