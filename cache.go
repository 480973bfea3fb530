package codebook

import (
	"reflect"
	"sync"
)

// cacheKey combines type and codec for processor lookup.
type cacheKey struct {
	typ         reflect.Type
	contentType string
}

var (
	processors   = make(map[cacheKey]any)
	processorsMu sync.RWMutex
)

// Use returns a cached processor for T and codec, building one on first use.
// Options apply only when the processor is built; keys set later with SetKey
// are shared by every caller of Use for the same type and codec.
func Use[T Cloner[T]](codec Codec, opts ...ProcessorOption) (*Processor[T], error) {
	key := cacheKey{typ: reflect.TypeFor[T](), contentType: codec.ContentType()}

	// Fast path: read-lock cache check
	processorsMu.RLock()
	if cached, ok := processors[key]; ok {
		processorsMu.RUnlock()
		return cached.(*Processor[T]), nil
	}
	processorsMu.RUnlock()

	processorsMu.Lock()
	defer processorsMu.Unlock()

	// Double-check after acquiring the write lock
	if cached, ok := processors[key]; ok {
		return cached.(*Processor[T]), nil
	}

	p, err := NewProcessor[T](codec, opts...)
	if err != nil {
		return nil, err
	}
	processors[key] = p
	return p, nil
}

// Reset clears the processor cache.
// This is primarily useful for test isolation.
func Reset() {
	processorsMu.Lock()
	defer processorsMu.Unlock()
	processors = make(map[cacheKey]any)
}
