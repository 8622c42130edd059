// Package memory provides order recycling: a typed pool for order
// allocation, a retire ring that collects orders unlinked from the
// books, and epoch tracking that delays reuse until no snapshot reader
// can still observe them.
//
// The package is dependency-free and shared by every book.
package memory
