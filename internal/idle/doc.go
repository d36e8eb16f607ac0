// Package idle defers work until the host is idle.
//
// Hosts post tasks under a key as events arrive and drain the queue when
// they have nothing better to do. Posting a key that is already pending
// replaces its task, so a burst of change notifications costs one
// recomputation.
package idle
