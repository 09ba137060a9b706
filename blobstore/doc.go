// Package blobstore provides the storage abstraction PASCIFAR reads source
// archives from and publishes built datasets to.
//
// A BlobStore serves named, immutable blobs. Implementations must be safe
// for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, reads through mmap
//   - MemoryStore: in-memory, for tests
//   - HTTPStore: read-only origin over HTTP range requests (the default
//     CIFAR mirror)
//   - minio.Store: MinIO and other S3-compatible servers
//   - s3.Store: Amazon S3
//
// # Custom Implementations
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)
//	    Put(ctx, name, data) error
//	    List(ctx, prefix) ([]string, error)
//	}
package blobstore
