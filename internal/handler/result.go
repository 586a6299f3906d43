// Package handler contains one domain handler per entity family. A handler
// validates the raw payload, maps it through the transform package, and
// writes through the persistence gateway. Handlers never bypass the gateway
// and never log their own failures; the caller at the isolation boundary
// decides what a failure means.
package handler

// Result summarizes what one handler invocation did to the store. Callers
// use it for logging; it is never swallowed silently.
type Result struct {
	Created  int `json:"created"`
	Updated  int `json:"updated"`
	Deleted  int `json:"deleted"`
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

func upsertResult(created bool) *Result {
	if created {
		return &Result{Created: 1}
	}
	return &Result{Updated: 1}
}

func deleteResult(found bool) *Result {
	if found {
		return &Result{Deleted: 1}
	}
	return &Result{Skipped: 1}
}
