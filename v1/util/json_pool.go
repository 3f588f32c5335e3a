// Copyright 2025 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package util

import (
	"bytes"
	"sync"
)

// bufferPool provides a pool of reusable byte buffers for JSON encoding.
var bufferPool = sync.Pool{
	New: func() any {
		// Pre-allocate 1KB buffer for typical documents
		return bytes.NewBuffer(make([]byte, 0, 1024))
	},
}

// maxPooledBuffer bounds the buffers returned to the pool so that one large
// document does not pin its memory for the life of the process.
const maxPooledBuffer = 1 << 20

// getBuffer retrieves a buffer from the pool.
func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

// putBuffer returns a buffer to the pool after resetting it.
func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledBuffer {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}
