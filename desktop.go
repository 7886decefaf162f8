// Package desktop is the core of the LimitlessOS browser desktop: a
// persistent virtual file store and the window session manager, wired to
// configuration, logging, metrics and a storage backend.
//
// Presentation code (terminal, file browser, taskbar, window chrome) talks
// to the two subsystems only through Desktop.Files, Desktop.Windows and
// Desktop.Launcher.
package desktop

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/LimitlessOS/desktop/internal/domain/vfs"
	"github.com/GriffinCanCode/LimitlessOS/desktop/internal/domain/vfs/seed"
	"github.com/GriffinCanCode/LimitlessOS/desktop/internal/domain/window"
	"github.com/GriffinCanCode/LimitlessOS/desktop/internal/infrastructure/config"
	"github.com/GriffinCanCode/LimitlessOS/desktop/internal/infrastructure/logging"
	"github.com/GriffinCanCode/LimitlessOS/desktop/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/LimitlessOS/desktop/internal/infrastructure/storage"
	"github.com/GriffinCanCode/LimitlessOS/desktop/internal/shared/id"
	"github.com/GriffinCanCode/LimitlessOS/desktop/internal/shared/utils"
)

// File store types.
type (
	FileStore   = vfs.Store
	Kind        = vfs.Kind
	NodeSummary = vfs.NodeSummary
	NodeInfo    = vfs.NodeInfo
	PathError   = vfs.PathError
)

// Window session types.
type (
	WindowManager = window.Manager
	WindowID      = id.WindowID
	Record        = window.Record
	Geometry      = window.Geometry
	GeometryPatch = window.GeometryPatch
	Launcher      = window.Launcher
	App           = window.App
)

const (
	KindFile   = vfs.KindFile
	KindFolder = vfs.KindFolder
)

var (
	ErrNotFound      = vfs.ErrNotFound
	ErrConflict      = vfs.ErrConflict
	ErrInvalidParent = vfs.ErrInvalidParent
	ErrInvalidPath   = vfs.ErrInvalidPath
	ErrRootImmutable = vfs.ErrRootImmutable
	ErrStorage       = vfs.ErrStorage
	ErrUnknownApp    = window.ErrUnknownApp
)

// Desktop wraps the two subsystems and their dependencies
type Desktop struct {
	Files    *vfs.Store
	Windows  *window.Manager
	Launcher *window.Launcher

	kv      storage.KV
	logger  *logging.Logger
	metrics *monitoring.Metrics
	config  *config.Config
}

// New builds a desktop from cfg, opening the configured storage backend.
// A nil cfg means config.Default().
func New(ctx context.Context, cfg *config.Config) (*Desktop, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	kv, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Backend, err)
	}

	d, err := NewWithStorage(ctx, cfg, kv)
	if err != nil {
		closeKV(kv)
		return nil, err
	}
	return d, nil
}

// NewWithStorage builds a desktop over an already opened medium. The
// desktop takes ownership of kv and closes it in Close.
func NewWithStorage(ctx context.Context, cfg *config.Config, kv storage.KV) (*Desktop, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		Component:   "desktop",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	logger.Info("Initializing LimitlessOS desktop",
		zap.String("storage", cfg.Storage.Backend),
		zap.String("slot", cfg.VFS.SlotKey),
	)

	var metrics *monitoring.Metrics
	if cfg.Metrics.Enabled {
		metrics = monitoring.NewMetrics()
	}

	hasher, err := utils.NewHasher(utils.HashAlgorithm(cfg.VFS.Checksum))
	if err != nil {
		return nil, fmt.Errorf("invalid VFS_CHECKSUM: %w", err)
	}

	opts := []vfs.Option{
		vfs.WithLogger(logger.Named("vfs")),
		vfs.WithMetrics(metrics),
		vfs.WithSlotKey(cfg.VFS.SlotKey),
		vfs.WithHasher(hasher),
	}

	root, err := loadSeed(ctx, cfg.VFS)
	if err != nil {
		return nil, err
	}
	if root != nil {
		opts = append(opts, vfs.WithSeed(root))
		logger.Info("Using custom seed tree",
			zap.String("manifest", cfg.VFS.SeedManifest),
			zap.String("dir", cfg.VFS.SeedDir),
		)
	}

	files := vfs.Open(ctx, kv, opts...)

	windows := window.NewManager().
		WithLogger(logger.Named("window")).
		WithMetrics(metrics).
		WithBaseZOrder(cfg.Window.BaseZOrder)

	launcher := window.NewLauncher(windows, window.DefaultCatalog(), window.LauncherConfig{
		Width:        cfg.Window.DefaultWidth,
		Height:       cfg.Window.DefaultHeight,
		ScreenWidth:  cfg.Window.ScreenWidth,
		ScreenHeight: cfg.Window.ScreenHeight,
	})

	logger.Info("Desktop ready")

	return &Desktop{
		Files:    files,
		Windows:  windows,
		Launcher: launcher,
		kv:       kv,
		logger:   logger,
		metrics:  metrics,
		config:   cfg,
	}, nil
}

func loadSeed(ctx context.Context, cfg config.VFSConfig) (*vfs.Folder, error) {
	switch {
	case cfg.SeedManifest != "":
		root, err := seed.LoadManifest(cfg.SeedManifest)
		if err != nil {
			return nil, fmt.Errorf("failed to load seed manifest: %w", err)
		}
		return root, nil
	case cfg.SeedDir != "":
		root, err := seed.FromDir(ctx, cfg.SeedDir)
		if err != nil {
			return nil, fmt.Errorf("failed to import seed dir: %w", err)
		}
		return root, nil
	default:
		return nil, nil
	}
}

// Logger returns the desktop logger.
func (d *Desktop) Logger() *logging.Logger {
	return d.logger
}

// Config returns the configuration the desktop was built from.
func (d *Desktop) Config() *config.Config {
	return d.config
}

// Registry returns the metrics registry, or nil when metrics are disabled.
func (d *Desktop) Registry() *prometheus.Registry {
	return d.metrics.Registry()
}

// Bounds returns the screen rectangle maximized windows fill.
func (d *Desktop) Bounds() Geometry {
	return Geometry{Width: d.config.Window.ScreenWidth, Height: d.config.Window.ScreenHeight}
}

// Close releases the storage backend and flushes the logger.
func (d *Desktop) Close() error {
	d.logger.Info("Shutting down desktop")
	_ = d.logger.Sync()
	return closeKV(d.kv)
}

func closeKV(kv storage.KV) error {
	if c, ok := kv.(storage.Closer); ok {
		return c.Close()
	}
	return nil
}
