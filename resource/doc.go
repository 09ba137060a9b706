// Package resource bounds the bandwidth, concurrency and buffered memory
// used while fetching source archives and publishing datasets.
package resource
