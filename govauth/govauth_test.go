package govauth

import (
	"bytes"
	"testing"
)

func TestVerify(t *testing.T) {
	d := New([]byte("correct horse battery staple"))

	if !d.Verify([]byte("correct horse battery staple")) {
		t.Fatal("correct passphrase rejected")
	}
	if d.Verify([]byte("correct horse battery stable")) {
		t.Fatal("wrong passphrase accepted")
	}
}

func TestSaltsDiffer(t *testing.T) {
	a := New([]byte("pass"))
	b := New([]byte("pass"))

	if a.salt == b.salt {
		t.Fatal("two digests share a salt")
	}
	if a.sum == b.sum {
		t.Fatal("two digests of the same passphrase collide")
	}
}

func TestKDFDeterministic(t *testing.T) {
	a := KDF([]byte("test"), []byte("somesalt"), 4, 4)
	b := KDF([]byte("test"), []byte("somesalt"), 4, 4)
	c := KDF([]byte("test"), []byte("othersalt"), 4, 4)

	if a != b {
		t.Fatal("same inputs gave different keys")
	}
	if a == c {
		t.Fatal("different salts gave the same key")
	}
	if bytes.Equal(a[:], make([]byte, 32)) {
		t.Fatal("key is all zero")
	}
}
