package frames

import "sync"

// defaultCacheSize covers a full calendar year of dates.
const defaultCacheSize = 366

// Source yields the sequence for an ISO date.
type Source interface {
	Build(date string) (Sequence, error)
}

// Cache memoizes a Builder by date with a bounded LRU. Values handed out
// are clones, so callers cannot disturb what later lookups return.
type Cache struct {
	builder *Builder
	lru     *lruCache
}

// NewCache wraps builder; maxEntries <= 0 uses a year's worth of dates.
func NewCache(builder *Builder, maxEntries int) *Cache {
	if maxEntries <= 0 {
		maxEntries = defaultCacheSize
	}
	return &Cache{builder: builder, lru: newLRUCache(maxEntries)}
}

// Build returns the cached sequence for date, building it on first use.
// Parse failures are not cached.
func (c *Cache) Build(date string) (Sequence, error) {
	if seq, ok := c.lru.get(date); ok {
		return seq.Clone(), nil
	}
	seq, err := c.builder.Build(date)
	if err != nil {
		return Sequence{}, err
	}
	c.lru.put(date, seq)
	return seq.Clone(), nil
}

// Len reports the number of cached dates.
func (c *Cache) Len() int {
	c.lru.mu.Lock()
	defer c.lru.mu.Unlock()
	return len(c.lru.entries)
}

var (
	_ Source = (*Builder)(nil)
	_ Source = (*Cache)(nil)
)

type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value Sequence
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (Sequence, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return Sequence{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value Sequence) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
