package crypto

import (
	"runtime"

	"xprlink/internal/domain"
)

// Wipe zeroes the provided buffer. This is best-effort and aims to
// reduce the chance of the compiler eliding the write.
//
//go:noinline
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(&b)
}

// WipeKey zeroes a request private key in place.
func WipeKey(k *domain.Ed25519Private) {
	if k == nil {
		return
	}
	Wipe(k[:])
}
