package allocator

// AllocateBlockCallback is called after an allocator obtains a new block of size elements
type AllocateBlockCallback func(
	size int,
	userData interface{},
)

// FreeBlockCallback is called after an allocator releases a block of size elements
type FreeBlockCallback func(
	size int,
	userData interface{},
)

type MemoryCallbackOptions struct {
	Allocate AllocateBlockCallback
	Free     FreeBlockCallback
	UserData interface{}
}

type memoryCallbacks struct {
	Callbacks *MemoryCallbackOptions
}

func (c *memoryCallbacks) Allocate(size int) {
	if c.Callbacks != nil && c.Callbacks.Allocate != nil {
		c.Callbacks.Allocate(size, c.Callbacks.UserData)
	}
}

func (c *memoryCallbacks) Free(size int) {
	if c.Callbacks != nil && c.Callbacks.Free != nil {
		c.Callbacks.Free(size, c.Callbacks.UserData)
	}
}
