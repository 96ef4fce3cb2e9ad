package tasks

import (
	"strings"
	"time"
)

// CacheEntry is the most recent successful translation.
type CacheEntry struct {
	SourceText string
	TargetLang string
	Text       string
	StoredAt   time.Time
}

// Cache is a single-slot, session scoped translation cache.
//
// It is owned by a [Machine] and follows the same single goroutine rule.
type Cache struct {
	entry *CacheEntry
}

// Get returns the cached translation when it was produced for the same trimmed text and language.
func (c *Cache) Get(text, lang string) (CacheEntry, bool) {
	if c.entry == nil {
		return CacheEntry{}, false
	}
	if c.entry.SourceText != strings.TrimSpace(text) || c.entry.TargetLang != lang {
		return CacheEntry{}, false
	}
	return *c.entry, true
}

// Latest returns the slot regardless of key.
func (c *Cache) Latest() (CacheEntry, bool) {
	if c.entry == nil {
		return CacheEntry{}, false
	}
	return *c.entry, true
}

func (c *Cache) put(e CacheEntry) {
	e.SourceText = strings.TrimSpace(e.SourceText)
	c.entry = &e
}

func (c *Cache) clear() {
	c.entry = nil
}
