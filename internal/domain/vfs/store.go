package vfs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/LimitlessOS/desktop/internal/infrastructure/logging"
	"github.com/GriffinCanCode/LimitlessOS/desktop/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/LimitlessOS/desktop/internal/infrastructure/storage"
	"github.com/GriffinCanCode/LimitlessOS/desktop/internal/shared/utils"
)

// Load fallback reasons.
const (
	FallbackMissing     = "missing"
	FallbackUnavailable = "unavailable"
	FallbackCorrupt     = "corrupt"
)

// Store is the virtual file tree mirrored to one storage slot
type Store struct {
	mu      sync.RWMutex
	root    *Folder // Protected by mu
	kv      storage.KV
	key     string
	codec   *codec
	seed    *Folder
	clock   func() time.Time
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(logger *logging.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithMetrics enables metrics tracking.
func WithMetrics(metrics *monitoring.Metrics) Option {
	return func(s *Store) { s.metrics = metrics }
}

// WithSlotKey overrides DefaultSlotKey.
func WithSlotKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithSeed replaces the built-in seed tree. The store keeps its own copy.
func WithSeed(root *Folder) Option {
	return func(s *Store) {
		if root != nil {
			s.seed = root.Clone()
		}
	}
}

// WithClock sets the time source used for modification stamps.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) { s.clock = clock }
}

// WithHasher selects the snapshot checksum algorithm.
func WithHasher(hasher *utils.Hasher) Option {
	return func(s *Store) { s.codec = newCodec(hasher) }
}

// Open loads the tree from kv. It never fails: a missing slot is seeded and
// written, an unreadable or corrupt slot is replaced in memory by the seed
// and left untouched until the next mutation.
func Open(ctx context.Context, kv storage.KV, opts ...Option) *Store {
	s := &Store{
		kv:    kv,
		key:   DefaultSlotKey,
		codec: newCodec(nil),
		clock: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}

	s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) {
	log := s.logger.With(zap.String("slot", s.key))

	raw, err := s.kv.Get(ctx, s.key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		s.root = s.seedTree()
		s.metrics.RecordLoadFallback(FallbackMissing)
		if err := s.persist(ctx); err != nil {
			log.Warn("Failed to write seed tree", zap.Error(err))
			return
		}
		log.Info("Seeded empty slot")
	case err != nil:
		s.root = s.seedTree()
		s.metrics.RecordLoadFallback(FallbackUnavailable)
		log.Warn("Storage unavailable, starting from seed tree", zap.Error(err))
	default:
		root, err := s.codec.decode(raw)
		if err != nil {
			s.root = s.seedTree()
			s.metrics.RecordLoadFallback(FallbackCorrupt)
			log.Warn("Corrupt snapshot, starting from seed tree", zap.Error(err), zap.Int("bytes", len(raw)))
			return
		}
		s.root = root
		log.Debug("Loaded snapshot", zap.Int("bytes", len(raw)))
	}
}

func (s *Store) seedTree() *Folder {
	if s.seed != nil {
		return s.seed.Clone()
	}
	return DefaultSeed(s.clock())
}

// persist writes the whole tree. Callers hold mu.
func (s *Store) persist(ctx context.Context) error {
	timer := monitoring.NewTimer(s.metrics)

	data, err := s.codec.encode(s.root)
	if err == nil {
		err = s.kv.Put(ctx, s.key, data)
	}
	elapsed := timer.Stop(len(data), err)

	if err != nil {
		s.logger.Error("Failed to persist tree",
			zap.String("slot", s.key),
			zap.Error(err))
		return err
	}
	s.logger.Debug("Persisted tree",
		zap.String("slot", s.key),
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", elapsed))
	return nil
}

// commit persists a mutation, running undo if the write fails.
func (s *Store) commit(ctx context.Context, op, path string, undo func()) error {
	if err := s.persist(ctx); err != nil {
		undo()
		return pathErr(op, path, fmt.Errorf("%w: %w", ErrStorage, err))
	}
	return nil
}

func (s *Store) record(op string, err error) error {
	s.metrics.RecordVFSOperation(op, err)
	return err
}

// ReadDir returns the immediate children of the folder at path.
func (s *Store) ReadDir(path string) (map[string]NodeSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	folder, ok := resolveFolder(s.root, split(path))
	if !ok {
		return nil, s.record("readdir", pathErr("readdir", path, ErrNotFound))
	}

	entries := make(map[string]NodeSummary, len(folder.Children))
	for name, child := range folder.Children {
		entries[name] = summarize(child)
	}
	s.metrics.RecordVFSOperation("readdir", nil)
	return entries, nil
}

// ReadFile returns a copy of the content of the file at path.
func (s *Store) ReadFile(path string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := resolve(s.root, split(path))
	if !ok {
		return nil, s.record("readfile", pathErr("readfile", path, ErrNotFound))
	}
	file, ok := n.(*File)
	if !ok {
		return nil, s.record("readfile", pathErr("readfile", path, ErrNotFound))
	}

	s.metrics.RecordVFSOperation("readfile", nil)
	return append([]byte{}, file.Content...), nil
}

// Create adds a file or an empty folder at path. content is ignored for
// folders.
func (s *Store) Create(ctx context.Context, path string, kind Kind, content []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.record("create", s.create(ctx, path, kind, content))
}

func (s *Store) create(ctx context.Context, path string, kind Kind, content []byte) error {
	if !kind.Valid() {
		return pathErr("create", path, fmt.Errorf("%w: unknown kind %q", ErrInvalidPath, kind))
	}

	segs := split(path)
	if len(segs) == 0 {
		return pathErr("create", path, fmt.Errorf("%w: no name", ErrInvalidPath))
	}
	name := segs[len(segs)-1]
	if err := ValidName(name); err != nil {
		return pathErr("create", path, err)
	}

	parent, ok := resolveFolder(s.root, segs[:len(segs)-1])
	if !ok {
		return pathErr("create", path, ErrInvalidParent)
	}
	if _, exists := parent.Children[name]; exists {
		return pathErr("create", path, ErrConflict)
	}

	now := s.clock()
	var n Node
	switch kind {
	case KindFile:
		n = NewFile(content, now)
	case KindFolder:
		n = NewFolder(now)
	}

	prev := parent.Modified
	parent.Children[name] = n
	parent.Modified = now

	if err := s.commit(ctx, "create", path, func() {
		delete(parent.Children, name)
		parent.Modified = prev
	}); err != nil {
		return err
	}

	s.logger.Debug("Created node", zap.String("path", join(segs)), zap.String("kind", string(kind)))
	return nil
}

// Delete removes the node at path together with its subtree.
func (s *Store) Delete(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.record("delete", s.remove(ctx, path))
}

func (s *Store) remove(ctx context.Context, path string) error {
	segs := split(path)
	if len(segs) == 0 {
		return pathErr("delete", path, ErrRootImmutable)
	}
	name := segs[len(segs)-1]

	parent, ok := resolveFolder(s.root, segs[:len(segs)-1])
	if !ok {
		return pathErr("delete", path, ErrNotFound)
	}
	n, ok := parent.Children[name]
	if !ok {
		return pathErr("delete", path, ErrNotFound)
	}

	prev := parent.Modified
	delete(parent.Children, name)
	parent.Modified = s.clock()

	if err := s.commit(ctx, "delete", path, func() {
		parent.Children[name] = n
		parent.Modified = prev
	}); err != nil {
		return err
	}

	s.logger.Debug("Deleted node", zap.String("path", join(segs)))
	return nil
}

// Move re-parents the node at src to dst. The moved node keeps its own
// modification time; both parent folders are stamped.
func (s *Store) Move(ctx context.Context, src, dst string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.record("move", s.move(ctx, src, dst))
}

func (s *Store) move(ctx context.Context, src, dst string) error {
	srcSegs := split(src)
	if len(srcSegs) == 0 {
		return pathErr("move", src, ErrRootImmutable)
	}
	srcName := srcSegs[len(srcSegs)-1]

	srcParent, ok := resolveFolder(s.root, srcSegs[:len(srcSegs)-1])
	if !ok {
		return pathErr("move", src, ErrNotFound)
	}
	n, ok := srcParent.Children[srcName]
	if !ok {
		return pathErr("move", src, ErrNotFound)
	}

	dstSegs := split(dst)
	if len(dstSegs) == 0 {
		return pathErr("move", dst, fmt.Errorf("%w: no name", ErrInvalidPath))
	}
	dstName := dstSegs[len(dstSegs)-1]
	if err := ValidName(dstName); err != nil {
		return pathErr("move", dst, err)
	}

	dstParentSegs := dstSegs[:len(dstSegs)-1]
	dstParent, ok := resolveFolder(s.root, dstParentSegs)
	if !ok {
		return pathErr("move", dst, fmt.Errorf("%w: %w", ErrNotFound, ErrInvalidParent))
	}
	if _, exists := dstParent.Children[dstName]; exists {
		return pathErr("move", dst, ErrConflict)
	}
	if _, isFolder := n.(*Folder); isFolder && hasPrefix(dstParentSegs, srcSegs) {
		return pathErr("move", dst, fmt.Errorf("%w: destination is inside source", ErrInvalidParent))
	}

	now := s.clock()
	prevSrc, prevDst := srcParent.Modified, dstParent.Modified

	delete(srcParent.Children, srcName)
	dstParent.Children[dstName] = n
	srcParent.Modified = now
	dstParent.Modified = now

	if err := s.commit(ctx, "move", src, func() {
		delete(dstParent.Children, dstName)
		srcParent.Children[srcName] = n
		dstParent.Modified = prevDst
		srcParent.Modified = prevSrc
	}); err != nil {
		return err
	}

	s.logger.Debug("Moved node",
		zap.String("from", join(srcSegs)),
		zap.String("to", join(dstSegs)))
	return nil
}
