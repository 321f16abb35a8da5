// Package lib holds modules that do not fit strictly into the request
// layers. Today that is the Redis-backed background job processing.
package lib
