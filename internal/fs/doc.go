// Package fs provides the filesystem abstraction used to write the dataset
// tree, so tests can inject failures.
//
//   - [File]: an open file with write/sync capabilities
//   - [FileSystem]: directory and file operations used by the assembler,
//     the manifest writer and the fetcher
//
// # Implementations
//
//   - [LocalFS]: production implementation backed by package os
//   - [FaultyFS]: test wrapper that fails writes, syncs, closes or
//     directory creation for matching paths
//
// Production code should use fs.Default:
//
//	f, err := fs.Default.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
//
// Tests inject [FaultyFS]:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.FailMkdir("cat", syscall.ENOSPC)
//
// Operations take no context.Context. Local syscalls are not interruptible;
// slow remote I/O goes through package blobstore, which does.
package fs
