package native

import (
	"fmt"
	"sync"

	"github.com/ebitengine/purego"
)

// libHandle is one dlopen'd library, shared by every NativeFunctionValue
// bound against it.
type libHandle struct {
	path   string
	handle uintptr
	refs   int
}

// libraryCache is the process-wide, reference-counted cache of open
// library handles, grounded on mleku-moxie/runtime/ffi.go's DLib wrapper
// around purego.Dlopen — generalized here to avoid reopening the same
// shared object once two native_fn_def_expr values name the same library.
type libraryCache struct {
	mu   sync.Mutex
	libs map[string]*libHandle
}

var cache = &libraryCache{libs: make(map[string]*libHandle)}

// acquire opens (or reuses) the library at path, incrementing its
// reference count.
func (c *libraryCache) acquire(path string) (*libHandle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if h, ok := c.libs[path]; ok {
		h.refs++
		return h, nil
	}

	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("loading native library %q: %w", path, err)
	}

	h := &libHandle{path: path, handle: handle, refs: 1}
	c.libs[path] = h
	return h, nil
}

// release drops a reference, evicting the cache entry immediately once
// nothing else holds it. Used by call sites that fail before handing a
// bound function back to the caller (e.g. a Dlsym lookup failure right
// after acquire), where there is no later finalizer to do the bookkeeping.
// purego does not expose dlclose, so the underlying handle itself is not
// closed — only the cache's own bookkeeping is dropped, letting a later
// acquire reopen it if needed.
func (c *libraryCache) release(h *libHandle) {
	c.mu.Lock()
	defer c.mu.Unlock()

	h.refs--
	if h.refs <= 0 {
		delete(c.libs, h.path)
	}
}

// detach drops a reference without evicting, mirroring a shared_ptr copy
// going out of scope in the original implementation: the cache's own map
// entry still keeps the handle around until update() sweeps it. Called
// from a boundFunction's finalizer once a successfully bound native
// function value is garbage collected.
func (c *libraryCache) detach(h *libHandle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	h.refs--
}

// update evicts every cache entry that no outstanding native function
// still holds (spec.md §4.4's library-cache interface), mirroring
// native_library_cache::update() in original_source/src/native_library_cache.cpp,
// which sweeps the cache for handles whose shared_ptr has become unique
// (held only by the cache map itself).
func (c *libraryCache) update() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for path, h := range c.libs {
		if h.refs <= 0 {
			delete(c.libs, path)
		}
	}
}
