// Package stats counts lines, words, characters and bytes in a document
// and in its selection.
package stats
