// Package imaging turns raw CIFAR pixel records into images and encodes
// them for storage.
//
// A record is 3072 bytes: the red plane, then green, then blue, each a
// 32x32 row-major grid.
package imaging
