package draw

import (
	"bytes"
	"strings"
	"testing"
)

func TestChunkWriterOffsets(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 3, 2)
	cw.WriteAt(1, 1, "hi")
	if out.Len() != 0 {
		t.Fatal("wrote before Flush")
	}
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "\033[3;4Hhi"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if cw.Len() != 0 {
		t.Fatal("buffer not reset after Flush")
	}
}

func TestChunkWriterLargeFlush(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 0, 0)
	big := strings.Repeat("x", 3*maxChunkSize+7)
	cw.WriteString(big)
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if out.String() != big {
		t.Fatalf("flushed %d bytes, want %d", out.Len(), len(big))
	}
}
