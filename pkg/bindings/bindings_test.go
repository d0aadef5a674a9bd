package bindings

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leterax/opal/pkg/input"
)

func TestDefault(t *testing.T) {
	b := Default()
	assert.Equal(t, float32(10), b.Speed)
	for _, a := range Actions {
		assert.NotNil(t, b.Code(a), a)
	}
	assert.Equal(t, input.Code(input.KeyW), b.Code(Forward))
	assert.Equal(t, input.Code(input.KeyEscape), b.Code(Exit))
}

func TestCloneIsIndependent(t *testing.T) {
	b := Default()
	c := b.Clone()
	c.Keys[Forward] = input.KeyI
	assert.Equal(t, input.Code(input.KeyW), b.Code(Forward))
}

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		ext  string
		doc  string
		want func(b *Bindings)
	}{
		{
			name: "yaml",
			ext:  ".yaml",
			doc: `
speed: 4.5
keys:
  forward: Up
  Back: down
  exit: scan:9
`,
			want: func(b *Bindings) {
				b.Speed = 4.5
				b.Keys[Forward] = input.KeyArrowUp
				b.Keys[Back] = input.KeyArrowDown
				b.Keys[Exit] = input.ScanCode(9)
			},
		},
		{
			name: "toml",
			ext:  "toml",
			doc: `
speed = 20.0

[keys]
rise = "E"
fall = "Q"
`,
			want: func(b *Bindings) {
				b.Speed = 20
				b.Keys[Rise] = input.KeyE
				b.Keys[Fall] = input.KeyQ
			},
		},
		{
			name: "empty yaml",
			ext:  ".yml",
			doc:  "# nothing here\n",
			want: func(b *Bindings) {},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Parse([]byte(c.doc), c.ext)
			require.NoError(t, err)
			want := Default()
			c.want(&want)
			assert.Equal(t, want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name, ext, doc string
	}{
		{"unknown action", ".yaml", "keys:\n  jump: Space\n"},
		{"unknown key", ".yaml", "keys:\n  forward: Hyper\n"},
		{"unknown field", ".yaml", "sped: 3\n"},
		{"zero speed", ".yaml", "speed: 0\n"},
		{"negative speed", ".toml", "speed = -1.0\n"},
		{"unknown toml field", ".toml", "mouse = true\n"},
		{"bad toml", ".toml", "speed = \n"},
		{"unsupported format", ".json", "{}"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse([]byte(c.doc), c.ext)
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keys.yaml")
	require.NoError(t, os.WriteFile(path, []byte("keys:\n  left: J\n"), 0o644))

	b, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, input.Code(input.KeyJ), b.Code(Left))

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("speed = 0.0\n"), 0o644))
	_, err = Load(bad)
	assert.ErrorContains(t, err, "bad.toml")
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("a.YAML"))
	assert.True(t, Supported("dir/a.toml"))
	assert.False(t, Supported("a.json"))
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keys.toml")
	require.NoError(t, os.WriteFile(path, []byte("speed = 1.0\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := Watch(ctx, path, nil)
	require.NoError(t, err)

	// An unrelated file in the same directory is ignored; a broken edit is
	// skipped and the next good one is delivered.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("speed = 5.0\n"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("speed = oops\n"), 0o644))
	time.Sleep(3 * debounce)
	require.NoError(t, os.WriteFile(path, []byte("speed = 7.0\n[keys]\nforward = \"I\"\n"), 0o644))

	select {
	case b := <-ch:
		assert.Equal(t, float32(7), b.Speed)
		assert.Equal(t, input.Code(input.KeyI), b.Code(Forward))
	case <-time.After(5 * time.Second):
		t.Fatal("no reload")
	}

	cancel()
	select {
	case _, ok := <-ch:
		for ok {
			_, ok = <-ch
		}
	case <-time.After(5 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	_, err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "keys.yaml"), nil)
	assert.Error(t, err)
}
