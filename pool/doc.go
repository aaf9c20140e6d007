// Package pool provides the explicitly owned HTTP connection pool the
// dispatch flow sends through. Connections are keyed by target host and
// reused across requests; the pool's lifetime is scoped to the
// application's, with Close releasing pooled connections on shutdown.
package pool
