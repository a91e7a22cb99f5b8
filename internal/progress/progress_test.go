package progress

import (
	"bytes"
	"testing"
)

func TestNew_Disabled(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, 10, false)
	if _, ok := r.(*Nop); !ok {
		t.Fatalf("want Nop, got %T", r)
	}
	for i := 1; i <= 3; i++ {
		if got := r.Increment(); got != i {
			t.Fatalf("Increment=%d want %d", got, i)
		}
	}
	r.Finish()
	if buf.Len() != 0 {
		t.Fatalf("disabled reporter wrote %q", buf.String())
	}
}

func TestNew_EmptyBatch(t *testing.T) {
	if _, ok := New(&bytes.Buffer{}, 0, true).(*Nop); !ok {
		t.Fatal("empty batch should not draw a bar")
	}
}

func TestBar_Counts(t *testing.T) {
	var buf bytes.Buffer
	b := NewBar(&buf, 4)
	for i := 0; i < 4; i++ {
		b.Increment()
	}
	b.Finish()
	if buf.Len() == 0 {
		t.Fatal("bar wrote nothing")
	}
	if !bytes.Contains(buf.Bytes(), []byte("4 / 4")) {
		t.Fatalf("final state missing: %q", buf.String())
	}
}
