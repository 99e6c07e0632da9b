package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/peterbourgon/diskv/v3"
	"github.com/sirupsen/logrus"

	"tableflip.dev/contentcal/pkg/entry"
	"tableflip.dev/contentcal/pkg/logging"
)

// Persistence defines the persistence contract for calendar entries. The
// in-memory Store is loaded from and written through to it.
type Persistence interface {
	ListAll(ctx context.Context) ([]*entry.Entry, error)
	Store(e *entry.Entry) error
	Delete(e *entry.Entry) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path required")
	}
	return &persistence{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		basePath: basePath,
		index:    make(map[string]string),
		log:      logging.For("store"),
	}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	log      *logrus.Entry

	mu    sync.Mutex
	index map[string]string // entry id -> diskv key
}

func (p *persistence) read(key string) (*entry.Entry, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	e := &entry.Entry{}
	if err := json.Unmarshal(val, e); err != nil {
		return nil, err
	}
	_, id, ok := splitKey(key)
	if !ok {
		return nil, fmt.Errorf("store: malformed key %q", key)
	}
	e.ID = id
	return e, nil
}

func (p *persistence) ListAll(ctx context.Context) ([]*entry.Entry, error) {
	all := make([]*entry.Entry, 0)
	index := make(map[string]string)
	for key := range p.d.Keys(ctx.Done()) {
		e, err := p.read(key)
		if err != nil {
			p.log.WithError(err).WithField("key", key).Warn("skipping unreadable entry")
			continue
		}
		all = append(all, e)
		index[e.ID] = key
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.Lock()
	p.index = index
	p.mu.Unlock()
	entry.Sort(all)
	return all, nil
}

func (p *persistence) Store(e *entry.Entry) error {
	if e == nil || e.ID == "" {
		return errors.New("store: entry id required")
	}
	if e.CalendarDate.IsZero() {
		return errors.New("store: entry calendar date required")
	}
	key := toKey(e)
	saved := e.Clone()
	saved.Conflicts = nil
	data, err := json.Marshal(saved)
	if err != nil {
		return err
	}
	if err := p.d.Write(key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}

	// A rescheduled entry lives under a new day; drop the stale file.
	p.mu.Lock()
	previous, ok := p.index[e.ID]
	p.index[e.ID] = key
	p.mu.Unlock()
	if !ok {
		previous = p.findKey(e.ID, key)
	}
	if previous != "" && previous != key {
		if err := p.d.Erase(previous); err != nil {
			p.log.WithError(err).WithField("key", previous).Warn("failed to erase stale entry")
		}
	}
	return nil
}

func (p *persistence) Delete(e *entry.Entry) error {
	if e == nil || e.ID == "" {
		return errors.New("store: entry id required")
	}
	p.mu.Lock()
	key, ok := p.index[e.ID]
	delete(p.index, e.ID)
	p.mu.Unlock()
	if !ok {
		key = p.findKey(e.ID, "")
	}
	if key == "" {
		return fmt.Errorf("store: entry %s not persisted", e.ID)
	}
	return p.d.Erase(key)
}

// findKey scans for the key holding id, ignoring skip.
func (p *persistence) findKey(id, skip string) string {
	cancel := make(chan struct{})
	defer close(cancel)
	for key := range p.d.Keys(cancel) {
		if key == skip {
			continue
		}
		if _, kid, ok := splitKey(key); ok && kid == id {
			return key
		}
	}
	return ""
}

// Keys have the shape `2006-01-02.<id>` and land on disk as
// `<base>/2006-01/02/<id>` so each day is one directory.
func keyToPathTransform(key string) *diskv.PathKey {
	date, id, ok := splitKey(key)
	if !ok {
		return &diskv.PathKey{FileName: key}
	}
	return &diskv.PathKey{
		Path:     []string{date[:7], date[8:]},
		FileName: id,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) != 2 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s-%s.%s", pathKey.Path[0], pathKey.Path[1], pathKey.FileName)
}

func toKey(e *entry.Entry) string {
	return fmt.Sprintf("%s.%s", e.CalendarDate.Format(entry.LayoutISO), e.ID)
}

func splitKey(key string) (string, string, bool) {
	date, id, ok := strings.Cut(key, ".")
	if !ok || len(date) != len(entry.LayoutISO) || id == "" {
		return "", "", false
	}
	return date, id, true
}
