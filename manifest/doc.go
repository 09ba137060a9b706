// Package manifest writes and reads ts.csv, the index of an assembled
// dataset.
//
// The manifest lists one row per image as "<target>/<n>.png,<id>". Rows
// follow the canonical order of the target taxonomy and, within a target,
// the numeric order of the image sequence numbers. Targets without images
// contribute no rows; their ids stay unused.
package manifest
