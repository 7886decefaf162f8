package desktop

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/LimitlessOS/desktop/internal/infrastructure/config"
	"github.com/GriffinCanCode/LimitlessOS/desktop/internal/infrastructure/storage"
	"github.com/GriffinCanCode/LimitlessOS/desktop/internal/shared/paths"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Logging.Level = "error"
	return cfg
}

func TestNewDefault(t *testing.T) {
	d, err := New(context.Background(), testConfig())
	require.NoError(t, err)
	defer d.Close()

	readme, err := d.Files.ReadFile(paths.Readme)
	require.NoError(t, err)
	assert.Contains(t, string(readme), "Welcome to LimitlessOS!")

	rec, err := d.Launcher.Open("terminal")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rec.ZOrder)
	assert.Len(t, d.Windows.VisibleWindows(), 1)

	require.NotNil(t, d.Registry())
	families, err := d.Registry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestNewFileBackendPersists(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	cfg.Storage.Backend = config.BackendFile
	cfg.Storage.Dir = t.TempDir()
	cfg.Storage.Compress = true

	d, err := New(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, d.Files.Create(ctx, paths.UserPath("Documents", "todo.txt"), KindFile, []byte("ship it")))
	require.NoError(t, d.Close())

	reopened, err := New(ctx, cfg)
	require.NoError(t, err)
	defer reopened.Close()

	content, err := reopened.Files.ReadFile(paths.UserPath("Documents", "todo.txt"))
	require.NoError(t, err)
	assert.Equal(t, "ship it", string(content))

	_, err = os.Stat(filepath.Join(cfg.Storage.Dir, cfg.VFS.SlotKey+".json.zst"))
	assert.NoError(t, err)
}

func TestNewWithSeedManifest(t *testing.T) {
	manifest := filepath.Join(t.TempDir(), "seed.toml")
	require.NoError(t, os.WriteFile(manifest, []byte("[opt]\n\"motd\" = \"hi\"\n"), 0o644))

	cfg := testConfig()
	cfg.VFS.SeedManifest = manifest

	d, err := NewWithStorage(context.Background(), cfg, storage.NewMemoryKV())
	require.NoError(t, err)

	content, err := d.Files.ReadFile("/opt/motd")
	require.NoError(t, err)
	assert.Equal(t, "hi", string(content))
	assert.False(t, d.Files.Exists(paths.Readme))
}

func TestNewErrors(t *testing.T) {
	ctx := context.Background()

	cfg := testConfig()
	cfg.Storage.Backend = "floppy"
	_, err := New(ctx, cfg)
	assert.Error(t, err)

	cfg = testConfig()
	cfg.VFS.Checksum = "md5"
	_, err = New(ctx, cfg)
	assert.Error(t, err)

	cfg = testConfig()
	cfg.VFS.SeedManifest = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = New(ctx, cfg)
	assert.Error(t, err)

	cfg = testConfig()
	cfg.Logging.Level = "loud"
	_, err = New(ctx, cfg)
	assert.Error(t, err)
}

func TestMetricsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Metrics.Enabled = false

	d, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer d.Close()

	assert.Nil(t, d.Registry())
	d.Windows.Spawn("terminal", "Terminal", Geometry{Width: 800, Height: 600})
	assert.Equal(t, 1, d.Windows.Stats().Open)
}

func TestMaximizedLayoutUsesScreenBounds(t *testing.T) {
	d, err := New(context.Background(), testConfig())
	require.NoError(t, err)
	defer d.Close()

	rec, err := d.Launcher.Open("navigator")
	require.NoError(t, err)
	require.True(t, d.Windows.ToggleMaximize(rec.ID))

	rec, ok := d.Windows.Get(rec.ID)
	require.True(t, ok)
	assert.Equal(t, Geometry{Width: 1920, Height: 1080}, rec.Layout(d.Bounds()))
	assert.Equal(t, 800, rec.Geometry.Width)
}
