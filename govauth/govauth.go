// Package govauth gates governance updates behind a passphrase. The digest is
// derived once at boot and held in memory only; neither the passphrase nor the
// digest is ever written to disk or to the registry.
package govauth

import (
	"crypto/rand"
	"crypto/subtle"

	"golang.org/x/crypto/argon2"
)

const (
	KDF_ITERATIONS = 512
	KDF_MEMORY     = 6 * 1024 // KiB
)

type Digest struct {
	salt [16]byte
	sum  [32]byte
}

// New derives the digest of a passphrase with a fresh random salt.
func New(passphrase []byte) *Digest {
	d := &Digest{
		salt: genSalt(),
	}
	d.sum = KDF(passphrase, d.salt[:], KDF_ITERATIONS, KDF_MEMORY)

	return d
}

// KDF is argon2id with a single lane and a 32 byte output.
func KDF(pass, salt []byte, time, mem uint32) [32]byte {
	return [32]byte(argon2.IDKey(pass, salt, time, mem, 1, 32))
}

// Verify recomputes the digest and compares it in constant time.
func (d *Digest) Verify(passphrase []byte) bool {
	sum := KDF(passphrase, d.salt[:], KDF_ITERATIONS, KDF_MEMORY)

	return subtle.ConstantTimeCompare(sum[:], d.sum[:]) == 1
}

func genSalt() [16]byte {
	b := make([]byte, 16)

	_, err := rand.Read(b)
	if err != nil {
		panic(err)
	}

	return [16]byte(b)
}
