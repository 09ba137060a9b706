// Package conv provides checked integer conversions.
//
// Label ids are plain ints everywhere in the public API but live in uint32
// bitmaps and fixed-width headers internally. Values that come from disk
// (manifest rows, archive headers) go through these helpers instead of a
// bare cast.
package conv
