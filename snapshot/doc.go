// Package snapshot persists and restores the open-order state of every
// book so restarts only replay the log tail written after the last
// snapshot.
package snapshot
