// Package input turns raw terminal bytes into discrete key presses.
package input

import (
	"bufio"
	"io"
)

// Key is one recognized key press.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeySpace
	KeyEnter
	KeyQuit
	KeyEscape
	KeyBackspace
)

func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeySpace:
		return "space"
	case KeyEnter:
		return "enter"
	case KeyQuit:
		return "quit"
	case KeyEscape:
		return "escape"
	case KeyBackspace:
		return "backspace"
	default:
		return "none"
	}
}

// Input is everything read from the terminal since the last call.
type Input struct {
	Keys    []Key  // Recognized presses, in order
	Pressed []byte // Raw bytes, for text entry
	Closed  bool   // The underlying reader is gone
}

// Has reports whether k was pressed.
func (in Input) Has(k Key) bool {
	for _, got := range in.Keys {
		if got == k {
			return true
		}
	}
	return false
}

// Stream delivers input bytes via a channel.
type Stream struct {
	ch     chan byte
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r io.Reader) *Stream {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		for {
			b, err := br.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking).
func ReadInput(s *Stream) Input {
	var buf []byte

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	return Input{Keys: ParseKeys(buf), Pressed: buf, Closed: s.closed}
}

// ParseKeys decodes a byte buffer. Arrow keys arrive as CSI sequences
// (ESC [ C / ESC [ D); a lone ESC is the escape key.
func ParseKeys(buf []byte) []Key {
	var keys []Key
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'C':
				keys = append(keys, KeyRight)
				i += 2
				continue
			case 'D':
				keys = append(keys, KeyLeft)
				i += 2
				continue
			case 'A', 'B':
				i += 2
				continue
			}
		}

		if k := byteKey(b); k != KeyNone {
			keys = append(keys, k)
		}
	}
	return keys
}

func byteKey(b byte) Key {
	switch b {
	case 'q', 'Q', 0x03: // Ctrl+C
		return KeyQuit
	case 'a', 'A', 'j', 'J':
		return KeyLeft
	case 'd', 'D', 'l', 'L':
		return KeyRight
	case ' ':
		return KeySpace
	case '\n', '\r':
		return KeyEnter
	case '\b', '\x7f':
		return KeyBackspace
	case '\x1b':
		return KeyEscape
	default:
		return KeyNone
	}
}
