package msgcode

import "context"

//go:generate mockgen -source=$GOFILE -package mock_msgcode -destination=internal/mock/$GOFILE

// Entry is a raw (definition code, template) pair as found in a resource.
type Entry struct {
	DefinitionCode string
	Template       string
}

// Loader reads the entries of a message resource. A missing resource is
// reported with ErrResourceNotFound, which catalogs treat as an empty set.
type Loader interface {
	Load(ctx context.Context, locator string) ([]Entry, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, locator string) ([]Entry, error)

func (f LoaderFunc) Load(ctx context.Context, locator string) ([]Entry, error) {
	return f(ctx, locator)
}

// Observer receives catalog events on a background goroutine. Callbacks
// must not block for long; events are dropped when the queue is full.
type Observer interface {
	OnMessageMissing(code string)
	OnLoaded(locator string, count int)
	OnLoadFailure(locator string, err error)
}
