package msgcode

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Catalog maps bare codes to messages.
type Catalog interface {
	// Get looks code up as a bare code, then as a definition code, then
	// (for catalogs inheriting the global one) both again in the global
	// catalog.
	Get(code string) (*Message, bool)
	Keys() []string
	Messages() []*Message
	Len() int

	Add(definitionCode string, template string, overwrite bool) error
	Remove(code string)
	Clear()
	Merge(other Catalog)

	LoadMessages(messages []*Message, mode LoadMode)
	LoadEntries(entries []Entry, mode LoadMode) error
	Load(ctx context.Context, loader Loader, locator string, mode LoadMode) error
	LoadAll(ctx context.Context, loader Loader, locators []string, mode LoadMode) error
}

type DefaultCatalog struct {
	mu            sync.RWMutex
	messages      map[string]*Message
	inheritGlobal bool
	cfg           Config
	log           *zap.Logger
	stats         catalogStats
	observer      *observerQueue
}

// New creates a scoped catalog.
func New(cfg Config) *DefaultCatalog {
	return newCatalog(cfg, false)
}

func newCatalog(cfg Config, isGlobal bool) *DefaultCatalog {
	cfg.setDefaults()
	if isGlobal {
		cfg.InheritGlobal = false
	}

	c := &DefaultCatalog{
		messages:      map[string]*Message{},
		inheritGlobal: cfg.InheritGlobal,
		cfg:           cfg,
		log:           cfg.Logger,
		stats:         newCatalogStats(cfg.StatsMaxKeys),
	}
	c.observer = newObserverQueue(cfg.Observer, cfg.ObserverBuffer, &c.stats)

	return c
}

// InheritsGlobal reports whether lookups fall back to the global catalog.
func (c *DefaultCatalog) InheritsGlobal() bool {
	return c.inheritGlobal
}

func (c *DefaultCatalog) Get(code string) (*Message, bool) {
	if message, found := c.lookup(code); found {
		return message, true
	}
	if c.inheritGlobal {
		if global := globalCatalog(); global != c {
			if message, found := global.lookup(code); found {
				return message, true
			}
		}
	}
	c.onMessageMissing(code)
	return nil, false
}

func (c *DefaultCatalog) lookup(code string) (*Message, bool) {
	bare, err := BareCodeOf(code)

	c.mu.RLock()
	defer c.mu.RUnlock()
	if message, found := c.messages[code]; found {
		return message, true
	}
	if err == nil {
		if message, found := c.messages[bare]; found {
			return message, true
		}
	}
	return nil, false
}

func (c *DefaultCatalog) Keys() []string {
	c.mu.RLock()
	keys := make([]string, 0, len(c.messages))
	for code := range c.messages {
		keys = append(keys, code)
	}
	c.mu.RUnlock()

	sort.Strings(keys)
	return keys
}

// Messages returns the locally held messages sorted by code.
func (c *DefaultCatalog) Messages() []*Message {
	c.mu.RLock()
	messages := make([]*Message, 0, len(c.messages))
	for _, message := range c.messages {
		messages = append(messages, message)
	}
	c.mu.RUnlock()

	sort.Slice(messages, func(i, j int) bool {
		return messages[i].code < messages[j].code
	})
	return messages
}

func (c *DefaultCatalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}

func (c *DefaultCatalog) Add(definitionCode string, template string, overwrite bool) error {
	message, err := ParseMessage(definitionCode, template)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.messages[message.code]; exists && !overwrite {
		return &AlreadyExistsError{Code: message.code}
	}
	c.messages[message.code] = message

	return nil
}

// Remove deletes a message given its bare or definition code. Definition
// codes are decoded first; the literal key is used when the decoded one is
// not held.
func (c *DefaultCatalog) Remove(code string) {
	bare, err := BareCodeOf(code)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err == nil {
		if _, found := c.messages[bare]; found {
			delete(c.messages, bare)
			return
		}
	}
	delete(c.messages, code)
}

func (c *DefaultCatalog) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = map[string]*Message{}
}

// Merge copies every message held by other, overwriting on collision.
func (c *DefaultCatalog) Merge(other Catalog) {
	if other == nil {
		return
	}
	if dc, ok := other.(*DefaultCatalog); ok && (dc == nil || dc == c) {
		return
	}
	c.LoadMessages(other.Messages(), ReplaceExists)
}

// LoadMessages ignores nil messages and messages not built by
// ParseMessage (empty code).
func (c *DefaultCatalog) LoadMessages(messages []*Message, mode LoadMode) {
	loaded := make(map[string]*Message, len(messages))
	for _, message := range messages {
		if message == nil || message.code == "" {
			continue
		}
		loaded[message.code] = message
	}

	c.mu.Lock()
	c.apply(loaded, mode)
	c.mu.Unlock()
}

// LoadEntries parses every entry before touching the catalog; one invalid
// code fails the whole set.
func (c *DefaultCatalog) LoadEntries(entries []Entry, mode LoadMode) error {
	loaded, err := parseEntries(entries)
	if err != nil {
		err = &LoadError{Err: err}
		c.onLoadFailure("", err)
		return err
	}

	c.mu.Lock()
	c.apply(loaded, mode)
	c.mu.Unlock()
	c.onLoaded("", mode, len(loaded))

	return nil
}

// Load reads a resource through loader and merges it according to mode.
// Reading happens before the catalog is locked.
func (c *DefaultCatalog) Load(ctx context.Context, loader Loader, locator string, mode LoadMode) error {
	loaded, err := c.read(ctx, loader, locator)
	if err != nil {
		c.onLoadFailure(locator, err)
		return err
	}

	c.mu.Lock()
	c.apply(loaded, mode)
	c.mu.Unlock()
	c.onLoaded(locator, mode, len(loaded))

	return nil
}

// LoadAll reads every locator concurrently and merges the union in a single
// step, later locators winning on collision. Any failure leaves the catalog
// untouched.
func (c *DefaultCatalog) LoadAll(ctx context.Context, loader Loader, locators []string, mode LoadMode) error {
	results := make([]map[string]*Message, len(locators))

	g, gctx := errgroup.WithContext(ctx)
	for i, locator := range locators {
		g.Go(func() error {
			loaded, err := c.read(gctx, loader, locator)
			if err != nil {
				return err
			}
			results[i] = loaded
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		var loadErr *LoadError
		locator := ""
		if errors.As(err, &loadErr) {
			locator = loadErr.Locator
		}
		c.onLoadFailure(locator, err)
		return err
	}

	union := map[string]*Message{}
	for _, loaded := range results {
		for code, message := range loaded {
			union[code] = message
		}
	}

	c.mu.Lock()
	c.apply(union, mode)
	c.mu.Unlock()
	for i, locator := range locators {
		c.onLoaded(locator, mode, len(results[i]))
	}

	return nil
}

func (c *DefaultCatalog) read(ctx context.Context, loader Loader, locator string) (map[string]*Message, error) {
	if loader == nil {
		return nil, &LoadError{Locator: locator, Err: fmt.Errorf("no loader")}
	}
	if err := ctx.Err(); err != nil {
		return nil, &LoadError{Locator: locator, Err: err}
	}

	entries, err := loader.Load(ctx, locator)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			c.log.Debug("message resource not found", zap.String("locator", locator))
			return map[string]*Message{}, nil
		}
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			return nil, err
		}
		return nil, &LoadError{Locator: locator, Err: err}
	}

	loaded, err := parseEntries(entries)
	if err != nil {
		return nil, &LoadError{Locator: locator, Err: err}
	}

	return loaded, nil
}

func parseEntries(entries []Entry) (map[string]*Message, error) {
	loaded := make(map[string]*Message, len(entries))
	for _, entry := range entries {
		message, err := ParseMessage(entry.DefinitionCode, entry.Template)
		if err != nil {
			return nil, err
		}
		loaded[message.code] = message
	}
	return loaded, nil
}

// apply must be called with c.mu held for writing.
func (c *DefaultCatalog) apply(loaded map[string]*Message, mode LoadMode) {
	switch mode {
	case ReplaceExists:
		for code, message := range loaded {
			c.messages[code] = message
		}
	case SkipExists:
		for code, message := range loaded {
			if _, exists := c.messages[code]; exists {
				continue
			}
			c.messages[code] = message
		}
	default:
		messages := make(map[string]*Message, len(loaded))
		for code, message := range loaded {
			messages[code] = message
		}
		c.messages = messages
	}
}

func (c *DefaultCatalog) onMessageMissing(code string) {
	c.stats.incrementMissingMessage(code)
	c.observer.publish(observerEvent{
		kind: observerEventMessageMissing,
		code: code,
	})
}

func (c *DefaultCatalog) onLoaded(locator string, mode LoadMode, count int) {
	c.stats.recordLoad(c.cfg.NowFn())
	c.log.Debug("messages loaded",
		zap.String("locator", locator),
		zap.Stringer("mode", mode),
		zap.Int("count", count))
	c.observer.publish(observerEvent{
		kind:    observerEventLoaded,
		locator: locator,
		count:   count,
	})
}

func (c *DefaultCatalog) onLoadFailure(locator string, err error) {
	c.stats.incrementLoadFailure(locator)
	c.log.Warn("cannot load messages",
		zap.String("locator", locator),
		zap.Error(err))
	c.observer.publish(observerEvent{
		kind:    observerEventLoadFailure,
		locator: locator,
		err:     err,
	})
}

func (c *DefaultCatalog) SnapshotStats() Stats {
	return c.stats.snapshot()
}

func (c *DefaultCatalog) ResetStats() {
	c.stats.reset()
}

// Close stops the observer goroutine. The catalog stays usable; further
// events are no longer delivered.
func (c *DefaultCatalog) Close() {
	c.observer.close()
}

func SnapshotStats(catalog Catalog) (Stats, error) {
	statsProvider, ok := catalog.(interface{ SnapshotStats() Stats })
	if !ok {
		return Stats{}, fmt.Errorf("catalog does not support stats snapshots")
	}
	return statsProvider.SnapshotStats(), nil
}

func ResetStats(catalog Catalog) error {
	statsProvider, ok := catalog.(interface{ ResetStats() })
	if !ok {
		return fmt.Errorf("catalog does not support stats reset")
	}
	statsProvider.ResetStats()
	return nil
}

func Close(catalog Catalog) error {
	closer, ok := catalog.(interface{ Close() })
	if !ok {
		return fmt.Errorf("catalog does not support close")
	}
	closer.Close()
	return nil
}
