// Package cache keeps rendered public pages in memory until an admin change revalidates them.
package cache

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Header reports HIT or MISS on cacheable responses.
const Header = "X-Cache"

// RootPath is revalidated with every change since the home page shows all content types.
const RootPath = "/"

// Revalidator drops cached pages. Implemented by Cache and Broadcaster.
type Revalidator interface {
	Revalidate(paths ...string) []string
	PurgeAll()
}

// entry is a cached response.
type entry struct {
	body        []byte
	contentType string
}

// Cache is an expirable LRU of rendered pages keyed by path and query.
type Cache struct {
	lru *expirable.LRU[string, entry]
	// skip are path prefixes never cached.
	skip []string
}

// New returns a cache holding at most size pages for ttl each.
func New(size int, ttl time.Duration, skipPrefixes ...string) *Cache {
	return &Cache{
		lru:  expirable.NewLRU[string, entry](size, nil, ttl),
		skip: skipPrefixes,
	}
}

// NormalizePath returns the cache path form: leading slash, no trailing slash, no query.
func NormalizePath(p string) string {
	p = strings.TrimSpace(p)
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}

	p = "/" + strings.Trim(p, "/")

	return p
}

// Paths normalizes and deduplicates paths and appends the root path when missing.
func Paths(paths ...string) []string {
	seen := make(map[string]struct{}, len(paths)+1)
	out := make([]string, 0, len(paths)+1)

	for _, p := range paths {
		if strings.TrimSpace(p) == "" {
			continue
		}

		n := NormalizePath(p)
		if _, ok := seen[n]; ok {
			continue
		}

		seen[n] = struct{}{}
		out = append(out, n)
	}

	if _, ok := seen[RootPath]; !ok {
		out = append(out, RootPath)
	}

	return out
}

func keyPath(key string) string {
	if i := strings.IndexByte(key, '?'); i >= 0 {
		return key[:i]
	}

	return key
}

// Revalidate drops every cached variant of the given paths and the root path.
// It returns the normalized paths.
func (c *Cache) Revalidate(paths ...string) []string {
	targets := Paths(paths...)

	drop := make(map[string]struct{}, len(targets))
	for _, p := range targets {
		drop[p] = struct{}{}
	}

	for _, key := range c.lru.Keys() {
		if _, ok := drop[keyPath(key)]; ok {
			c.lru.Remove(key)
		}
	}

	return targets
}

// PurgeAll empties the cache.
func (c *Cache) PurgeAll() {
	c.lru.Purge()
}

// Len returns the number of cached pages.
func (c *Cache) Len() int {
	return c.lru.Len()
}

func (c *Cache) cacheable(ctx *fiber.Ctx) bool {
	if ctx.Method() != fiber.MethodGet {
		return false
	}

	p := ctx.Path()
	for _, prefix := range c.skip {
		if strings.HasPrefix(p, prefix) {
			return false
		}
	}

	return true
}

// Middleware serves cached pages and stores successful GET responses.
func (c *Cache) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if !c.cacheable(ctx) {
			return ctx.Next()
		}

		key := NormalizePath(ctx.Path())
		if qs := ctx.Request().URI().QueryString(); len(qs) > 0 {
			key += "?" + string(qs)
		}

		if e, ok := c.lru.Get(key); ok {
			ctx.Set(Header, "HIT")
			ctx.Set(fiber.HeaderContentType, e.contentType)

			return ctx.Send(e.body)
		}

		if err := ctx.Next(); err != nil {
			return err
		}

		ctx.Set(Header, "MISS")

		if ctx.Response().StatusCode() != fiber.StatusOK {
			return nil
		}

		c.lru.Add(key, entry{
			body:        append([]byte(nil), ctx.Response().Body()...),
			contentType: string(ctx.Response().Header.ContentType()),
		})

		return nil
	}
}
