package faqsearch

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	path      string
	documents []Document
	hasDocs   bool

	driver   string // "valkey" or "redis"
	addrs    []string
	password string
	key      string

	maxLimit int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithFile loads the catalog from a JSON file: [{"id","title","body"}, ...].
func WithFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.path = path
	})
}

// WithDocuments serves a fixed in-memory catalog. Reload re-validates the same slice.
func WithDocuments(docs []Document) Option {
	return optionFunc(func(c *clientConfig) {
		c.documents = append([]Document(nil), docs...)
		c.hasDocs = true
	})
}

// WithValkey loads the catalog from a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis loads the catalog from a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithKey sets the Valkey/Redis key holding the catalog.
// Default: "faqsearch:faqs".
func WithKey(key string) Option {
	return optionFunc(func(c *clientConfig) {
		c.key = key
	})
}

// WithMaxLimit caps the number of results a single query may request.
// Default: 10.
func WithMaxLimit(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxLimit = n
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
