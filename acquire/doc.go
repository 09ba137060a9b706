// Package acquire makes sure the CIFAR source archives are present and
// extracted in a working directory.
//
// Archives are downloaded from an origin blob store (the CIFAR site over
// HTTP by default, or any mirror) and unpacked next to it. An archive whose
// extracted directory already exists is left alone, and an archive file
// already on disk is not downloaded again.
//
// Supported formats, by file suffix: .tar.gz and .tgz, .tar.zst, .tar.lz4
// and plain .tar.
package acquire
