// Package store keeps live wizard sessions in memory.
//
// A session lives from creation until it is submitted, deleted or left idle
// for longer than the configured TTL. Nothing is written to disk: when the
// process exits every session is gone. All methods are safe for concurrent
// use; mutations against one session are serialised by the store lock.
package store
