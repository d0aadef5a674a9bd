package input

import (
	"bytes"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type frameEvents struct {
	frame  uint64
	events []Event
}

func TestRecordReplay(t *testing.T) {
	session := []frameEvents{
		{0, []Event{KeyDown{ScanCode: 17, Key: KeyW}, PointerMotion{DX: 2, DY: -1}}},
		{1, []Event{PointerMotion{DX: 0.5}, Resized{Width: 800, Height: 600}}},
		{3, []Event{KeyUp{ScanCode: 17, Key: KeyW}, KeyDown{ScanCode: 30, Key: KeyA}}},
		{4, []Event{Scroll{DY: -1}, CloseRequested{}}},
	}

	var buf bytes.Buffer
	rec, err := NewRecorder(&buf)
	require.NoError(t, err)
	live := NewManager()
	var liveStates []mgl32.Vec2
	for f := uint64(0); f <= 4; f++ {
		for _, fe := range session {
			if fe.frame != f {
				continue
			}
			for _, ev := range fe.events {
				require.NoError(t, rec.Write(f, ev))
				live.Record(ev)
			}
		}
		liveStates = append(liveStates, live.MouseDelta())
		live.AdvanceFrame()
	}
	require.NoError(t, rec.Close())
	assert.Equal(t, 8, rec.Count())

	p, err := NewPlayer(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer p.Close()

	replayed := NewManager()
	var got []Event
	for f := uint64(0); f <= 4; f++ {
		events, err := p.Next(f)
		require.NoError(t, err)
		for _, ev := range events {
			replayed.Record(ev)
		}
		got = append(got, events...)

		assert.Equal(t, liveStates[f], replayed.MouseDelta(), "frame %d", f)
		switch f {
		case 0:
			assert.True(t, replayed.IsJustPressed(KeyW))
		case 2:
			assert.True(t, replayed.IsDown(KeyW))
			assert.Empty(t, events)
		case 3:
			assert.True(t, replayed.IsJustReleased(ScanCode(17)))
			assert.True(t, replayed.IsJustPressed(KeyA))
		}
		replayed.AdvanceFrame()
	}

	var want []Event
	for _, fe := range session {
		want = append(want, fe.events...)
	}
	assert.Equal(t, want, got)
	assert.Equal(t, live.HeldKeys(), replayed.HeldKeys())

	rest, err := p.Next(100)
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.True(t, p.Done())
}

func TestPlayerCatchesUp(t *testing.T) {
	var buf bytes.Buffer
	rec, err := NewRecorder(&buf)
	require.NoError(t, err)
	require.NoError(t, rec.Write(2, KeyDown{Key: KeyE}))
	require.NoError(t, rec.Write(5, KeyUp{Key: KeyE}))
	// Events the recorder does not know are skipped.
	require.NoError(t, rec.Write(5, nil))
	require.NoError(t, rec.Close())
	assert.Equal(t, 2, rec.Count())

	p, err := NewPlayer(&buf)
	require.NoError(t, err)
	defer p.Close()

	events, err := p.Next(1)
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.False(t, p.Done())

	// Skipping ahead returns everything recorded up to the requested frame.
	events, err = p.Next(9)
	require.NoError(t, err)
	assert.Equal(t, []Event{KeyDown{Key: KeyE}, KeyUp{Key: KeyE}}, events)
	assert.True(t, p.Done())
}

func TestTruncatedStreamKeepsFlushedFrames(t *testing.T) {
	var buf bytes.Buffer
	rec, err := NewRecorder(&buf)
	require.NoError(t, err)

	var ends []int
	for f := uint64(0); f < 3; f++ {
		require.NoError(t, rec.Write(f, KeyDown{ScanCode: ScanCode(f + 1), Key: KeyW + Key(f)}))
		for i := 0; i < 50; i++ {
			require.NoError(t, rec.Write(f, PointerMotion{DX: float32(f*100 + uint64(i)), DY: 1}))
		}
		require.NoError(t, rec.Flush())
		ends = append(ends, buf.Len())
	}
	// The recorder is never closed, as after a crash.
	require.Less(t, ends[1], ends[2])

	cut := ends[1] + (ends[2]-ends[1])/2
	p, err := NewPlayer(bytes.NewReader(buf.Bytes()[:cut]))
	require.NoError(t, err)
	defer p.Close()

	events, err := p.Next(10)
	require.NoError(t, err)
	require.Len(t, events, 102)
	assert.Equal(t, KeyDown{ScanCode: 1, Key: KeyW}, events[0])
	assert.Equal(t, KeyDown{ScanCode: 2, Key: KeyW + 1}, events[51])
	assert.Equal(t, PointerMotion{DX: 149, DY: 1}, events[101])
	assert.True(t, p.Done())
}

func TestPlayerRejectsGarbage(t *testing.T) {
	p, err := NewPlayer(bytes.NewReader([]byte("not a zstd stream")))
	if err == nil {
		defer p.Close()
		_, err = p.Next(0)
	}
	assert.Error(t, err)
}
