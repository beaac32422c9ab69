package mempool

import (
	"sync"
)

// A simple sized pool for []byte encode buffers to reduce allocations when
// rendering many cells.

var bytePools sync.Map // key: size class (int), value: *sync.Pool

// sizeClass rounds n up to the next 64KiB bucket to reduce churn. Encoded
// frames cluster around a handful of sizes per output spec.
func sizeClass(n int) int {
	const step = 64 * 1024
	if n <= step {
		return step
	}
	r := (n + step - 1) / step
	return r * step
}

// GetBytes retrieves a []byte buffer with zero length and at least n
// capacity from the pool. The caller must return it via PutBytes when done.
func GetBytes(n int) []byte {
	cls := sizeClass(n)
	pAny, _ := bytePools.LoadOrStore(cls, &sync.Pool{New: func() any { return make([]byte, 0, cls) }})
	p, ok := pAny.(*sync.Pool)
	if !ok {
		return make([]byte, 0, cls)
	}
	buf, ok := p.Get().([]byte)
	if !ok || cap(buf) < n {
		buf = make([]byte, 0, cls)
	}
	return buf[:0]
}

// PutBytes returns a buffer to the pool. It is safe to pass a nil slice.
func PutBytes(buf []byte) {
	if buf == nil {
		return
	}
	cls := sizeClass(cap(buf))
	pAny, _ := bytePools.LoadOrStore(cls, &sync.Pool{New: func() any { return make([]byte, 0, cls) }})
	p, ok := pAny.(*sync.Pool)
	if !ok {
		return
	}
	p.Put(buf[:0]) //nolint:staticcheck
}
