package binary

import (
	"bytes"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	s := NewSer(make([]byte, 64))
	s.AddUint8(2)
	s.AddUint64(21_000_000_000_000)
	s.AddUvarint(540_000)
	s.AddString("validator-1")
	s.AddBool(true)
	s.AddBool(false)
	s.AddFixedByteArray(bytes.Repeat([]byte{0xab}, 32))

	d := NewDes(s.Output())
	if v := d.ReadUint8(); v != 2 {
		t.Fatalf("uint8: %d", v)
	}
	if v := d.ReadUint64(); v != 21_000_000_000_000 {
		t.Fatalf("uint64: %d", v)
	}
	if v := d.ReadUvarint(); v != 540_000 {
		t.Fatalf("uvarint: %d", v)
	}
	if v := d.ReadString(); v != "validator-1" {
		t.Fatalf("string: %q", v)
	}
	if !d.ReadBool() || d.ReadBool() {
		t.Fatal("bools did not round trip")
	}
	if v := d.ReadFixedByteArray(32); !bytes.Equal(v, bytes.Repeat([]byte{0xab}, 32)) {
		t.Fatalf("fixed array: %x", v)
	}
	if d.Error() != nil {
		t.Fatal(d.Error())
	}
	if len(d.RemainingData()) != 0 {
		t.Fatalf("%d bytes left over", len(d.RemainingData()))
	}
}

func TestTruncated(t *testing.T) {
	s := NewSer(nil)
	s.AddUint64(42)

	d := NewDes(s.Output()[:3])
	d.ReadUint64()
	if d.Error() == nil {
		t.Fatal("truncated uint64 should fail")
	}

	// the first error sticks, later reads are no-ops
	if d.ReadUint8() != 0 || d.ReadString() != "" {
		t.Fatal("reads after an error should return zero values")
	}

	d = NewDes([]byte{2})
	d.ReadBool()
	if d.Error() == nil {
		t.Fatal("invalid boolean byte should fail")
	}

	d = NewDes([]byte{5, 'a', 'b'})
	d.ReadByteSlice()
	if d.Error() == nil {
		t.Fatal("byte slice longer than the buffer should fail")
	}
}

func BenchmarkBinary(b *testing.B) {
	s := NewSer(make([]byte, b.N*4))

	n := uint64(b.N)
	for i := uint64(0); i < n; i++ {
		s.AddUvarint(i)
	}

	b.Logf("actual encoded length: %d; n*4: %d", len(s.Output()), n*4)

	d := NewDes(s.Output())

	for i := uint64(0); i < n; i++ {
		d.ReadUvarint()
	}

	if d.Error() != nil {
		b.Fatal(d.err)
	}
}
