package input

import (
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// Recorded events are stored as a zstd-compressed stream of msgpack
// records, each tagged with the frame it was delivered in.

const (
	kindKeyDown uint8 = iota + 1
	kindKeyUp
	kindPointerMotion
	kindCloseRequested
	kindResized
	kindScroll
)

type record struct {
	Frame uint64  `msgpack:"f"`
	Kind  uint8   `msgpack:"k"`
	Scan  int     `msgpack:"s,omitempty"`
	Key   int     `msgpack:"c,omitempty"`
	X     float32 `msgpack:"x,omitempty"`
	Y     float32 `msgpack:"y,omitempty"`
}

func makeRecord(frame uint64, ev Event) (record, bool) {
	r := record{Frame: frame}
	switch e := ev.(type) {
	case KeyDown:
		r.Kind, r.Scan, r.Key = kindKeyDown, int(e.ScanCode), int(e.Key)
	case KeyUp:
		r.Kind, r.Scan, r.Key = kindKeyUp, int(e.ScanCode), int(e.Key)
	case PointerMotion:
		r.Kind, r.X, r.Y = kindPointerMotion, e.DX, e.DY
	case CloseRequested:
		r.Kind = kindCloseRequested
	case Resized:
		r.Kind, r.Scan, r.Key = kindResized, e.Width, e.Height
	case Scroll:
		r.Kind, r.X, r.Y = kindScroll, e.DX, e.DY
	default:
		return r, false
	}
	return r, true
}

func (r record) event() (Event, error) {
	switch r.Kind {
	case kindKeyDown:
		return KeyDown{ScanCode: ScanCode(r.Scan), Key: Key(r.Key)}, nil
	case kindKeyUp:
		return KeyUp{ScanCode: ScanCode(r.Scan), Key: Key(r.Key)}, nil
	case kindPointerMotion:
		return PointerMotion{DX: r.X, DY: r.Y}, nil
	case kindCloseRequested:
		return CloseRequested{}, nil
	case kindResized:
		return Resized{Width: r.Scan, Height: r.Key}, nil
	case kindScroll:
		return Scroll{DX: r.X, DY: r.Y}, nil
	default:
		return nil, fmt.Errorf("frame %d: unknown event kind %d", r.Frame, r.Kind)
	}
}

// Recorder writes events to a stream so that a session can be replayed.
type Recorder struct {
	zw  *zstd.Encoder
	enc *msgpack.Encoder
	n   int
}

// NewRecorder returns a Recorder writing to w. Close must be called to
// flush the compressed stream; it does not close w.
func NewRecorder(w io.Writer) (*Recorder, error) {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd writer: %w", err)
	}
	return &Recorder{zw: zw, enc: msgpack.NewEncoder(zw)}, nil
}

// Write records ev as delivered during the given frame. Unknown event
// types are skipped.
func (r *Recorder) Write(frame uint64, ev Event) error {
	rec, ok := makeRecord(frame, ev)
	if !ok {
		return nil
	}
	if err := r.enc.Encode(&rec); err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	r.n++
	return nil
}

// Flush writes everything recorded so far as a complete block, so that a
// stream cut short after it still replays up to this point.
func (r *Recorder) Flush() error {
	return r.zw.Flush()
}

// Count returns the number of events written so far.
func (r *Recorder) Count() int {
	return r.n
}

func (r *Recorder) Close() error {
	return r.zw.Close()
}

// Player reads a stream written by Recorder and hands events back frame by
// frame. A stream that ends mid-block, as left by a recorder that was never
// closed, ends the replay after the last flushed block.
type Player struct {
	zr      *zstd.Decoder
	dec     *msgpack.Decoder
	pending *record
	done    bool
}

func NewPlayer(r io.Reader) (*Player, error) {
	zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %w", err)
	}
	return &Player{zr: zr, dec: msgpack.NewDecoder(zr)}, nil
}

// Next returns the events recorded for every frame up to and including
// frame that have not been returned yet.
func (p *Player) Next(frame uint64) ([]Event, error) {
	var events []Event
	for !p.done {
		if p.pending == nil {
			var rec record
			if err := p.dec.Decode(&rec); err != nil {
				if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
					p.done = true
					break
				}
				return events, fmt.Errorf("failed to decode event: %w", err)
			}
			p.pending = &rec
		}
		if p.pending.Frame > frame {
			break
		}
		ev, err := p.pending.event()
		p.pending = nil
		if err != nil {
			return events, err
		}
		events = append(events, ev)
	}
	return events, nil
}

// Done reports whether every recorded event has been returned.
func (p *Player) Done() bool {
	return p.done && p.pending == nil
}

func (p *Player) Close() {
	p.zr.Close()
}
