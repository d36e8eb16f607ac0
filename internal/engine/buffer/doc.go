// Package buffer provides the rune-addressed text storage used by the
// reference document engine.
//
// All offsets are character offsets: an offset counts Unicode scalar values
// from the start of the buffer, never bytes. This matches the coordinate
// system hosts use when they hand a selection to the text operations.
//
// The package provides:
//
//   - Thread-safe read/write access via sync.RWMutex
//   - Coordinate conversion between offsets and line/column points
//   - Line ending normalization on load and insert
//   - Revision tracking for change detection
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("Hello, World!")
//	buf.Insert(7, "Beautiful ")  // "Hello, Beautiful World!"
//	buf.Delete(0, 7)             // "Beautiful World!"
package buffer
