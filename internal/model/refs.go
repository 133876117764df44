package model

import (
	"runtime"
	"sync"
	"weak"

	"github.com/google/uuid"
)

// HandlePrefix starts every element handle.
const HandlePrefix = "element-"

// NewHandle mints a globally unique element handle.
func NewHandle() string {
	return HandlePrefix + uuid.NewString()
}

// refKey ties a registry entry to its cleanup.
type refKey[T any] struct {
	ptr    weak.Pointer[T]
	handle string
}

// Refs associates live objects with opaque string handles without keeping
// them alive. An entry disappears on its own once its object is collected;
// a handle is never reassigned to another object.
type Refs[T any] struct {
	mu        sync.Mutex
	byHandle  map[string]weak.Pointer[T]
	byPointer map[weak.Pointer[T]]string
	newHandle func() string
}

// NewRefs creates an empty registry minting handles with NewHandle.
func NewRefs[T any]() *Refs[T] {
	return &Refs[T]{
		byHandle:  make(map[string]weak.Pointer[T]),
		byPointer: make(map[weak.Pointer[T]]string),
		newHandle: NewHandle,
	}
}

// Handle returns the handle of p, minting and storing one on first use.
func (r *Refs[T]) Handle(p *T) string {
	if p == nil {
		return ""
	}
	wp := weak.Make(p)

	r.mu.Lock()
	defer r.mu.Unlock()
	if h, ok := r.byPointer[wp]; ok {
		return h
	}
	h := r.newHandle()
	r.byHandle[h] = wp
	r.byPointer[wp] = h
	// The cleanup runs on its own goroutine once p is unreachable.
	runtime.AddCleanup(p, r.forget, refKey[T]{ptr: wp, handle: h})
	return h
}

// Lookup returns the object behind handle, or nil if the handle is unknown
// or its object is gone.
func (r *Refs[T]) Lookup(handle string) *T {
	r.mu.Lock()
	defer r.mu.Unlock()
	wp, ok := r.byHandle[handle]
	if !ok {
		return nil
	}
	p := wp.Value()
	if p == nil {
		delete(r.byHandle, handle)
		delete(r.byPointer, wp)
	}
	return p
}

// Len returns the number of entries not yet cleaned up.
func (r *Refs[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byHandle)
}

func (r *Refs[T]) forget(k refKey[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if wp, ok := r.byHandle[k.handle]; ok && wp == k.ptr {
		delete(r.byHandle, k.handle)
		delete(r.byPointer, k.ptr)
	}
}
