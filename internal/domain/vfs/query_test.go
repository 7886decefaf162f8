package vfs

import (
	"context"
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/LimitlessOS/desktop/internal/infrastructure/storage"
	"github.com/GriffinCanCode/LimitlessOS/desktop/internal/shared/paths"
)

func TestStat(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, storage.NewMemoryKV())

	readme, err := s.Stat(paths.Readme)
	require.NoError(t, err)
	assert.Equal(t, "README.txt", readme.Name)
	assert.Equal(t, paths.Readme, readme.Path)
	assert.Equal(t, KindFile, readme.Kind)
	assert.Equal(t, len(WelcomeText), readme.Size)
	assert.Contains(t, readme.MIME, "text/plain")
	assert.NotEmpty(t, readme.Charset)

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	require.NoError(t, s.Create(ctx, "/pixel.png", KindFile, png))
	img, err := s.Stat("/pixel.png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIME)
	assert.Empty(t, img.Charset)

	user, err := s.Stat(paths.User + "/")
	require.NoError(t, err)
	assert.Equal(t, KindFolder, user.Kind)
	assert.Equal(t, 3, user.Children)
	assert.Empty(t, user.MIME)

	root, err := s.Stat("/")
	require.NoError(t, err)
	assert.Equal(t, "/", root.Name)
	assert.Equal(t, "/", root.Path)

	_, err = s.Stat("/missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGlob(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, storage.NewMemoryKV())
	require.NoError(t, s.Create(ctx, paths.UserPath("Documents", "notes.txt"), KindFile, nil))
	require.NoError(t, s.Create(ctx, paths.UserPath("Documents", "todo.md"), KindFile, nil))

	matches, err := s.Glob("/home/**/*.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{
		paths.UserPath("Documents", "notes.txt"),
		paths.Readme,
	}, matches)

	matches, err = s.Glob(paths.User + "/*")
	require.NoError(t, err)
	assert.Equal(t, []string{paths.Documents, paths.Downloads, paths.Readme}, matches)

	matches, err = s.Glob("/nothing/*")
	require.NoError(t, err)
	assert.Empty(t, matches)

	_, err = s.Glob("/home/[")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestWalk(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, storage.NewMemoryKV())
	require.NoError(t, s.Create(ctx, paths.UserPath("Documents", "a.txt"), KindFile, nil))

	var visited []string
	err := s.Walk(paths.User, func(info NodeInfo) error {
		visited = append(visited, info.Path)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		paths.User,
		paths.Documents,
		paths.UserPath("Documents", "a.txt"),
		paths.Downloads,
		paths.Readme,
	}, visited)
}

func TestWalkSkipDir(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, storage.NewMemoryKV())
	require.NoError(t, s.Create(ctx, paths.UserPath("Documents", "a.txt"), KindFile, nil))

	var visited []string
	err := s.Walk(paths.User, func(info NodeInfo) error {
		visited = append(visited, info.Name)
		if info.Path == paths.Documents {
			return fs.SkipDir
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"limitless-user", "Documents", "Downloads", "README.txt"}, visited)
}

func TestWalkStopsOnError(t *testing.T) {
	s := openStore(t, storage.NewMemoryKV())
	stop := errors.New("stop")

	count := 0
	err := s.Walk("/", func(info NodeInfo) error {
		count++
		if info.Kind == KindFile {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 6, count)

	assert.ErrorIs(t, s.Walk("/missing", func(NodeInfo) error { return nil }), ErrNotFound)
}

func TestWalkCallbackMayMutate(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, storage.NewMemoryKV())

	err := s.Walk(paths.Downloads, func(info NodeInfo) error {
		return s.Create(ctx, info.Path+"/inside", KindFolder, nil)
	})
	require.NoError(t, err)
	assert.True(t, s.Exists(paths.UserPath("Downloads", "inside")))
}
