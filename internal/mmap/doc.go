// Package mmap provides read-only memory-mapped access to batch files.
//
//	m, err := mmap.Open("data_batch_1.bin")
//	if err != nil { ... }
//	defer m.Close()
//
//	m.Advise(mmap.AccessSequential)
//	record := m.Bytes()[off : off+size]
//
// Unix platforms use mmap(2) and madvise(2) through golang.org/x/sys/unix.
// Windows uses CreateFileMapping/MapViewOfFile; Advise is a no-op there.
package mmap
