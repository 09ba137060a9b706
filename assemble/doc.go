// Package assemble filters, renames, decodes and places source records
// into the per-class directory layout of the output dataset.
//
// Images are written to <root>/<target>/<n>.png where n counts from 1 for
// every target, in the order records are encountered across all sources
// of one Assemble call.
package assemble
