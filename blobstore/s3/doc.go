// Package s3 provides an Amazon S3 implementation of blobstore.BlobStore.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket", "pascifar/")
//	err = pascifar.Publish(ctx, "PASCIFAR", store)
//
// # Features
//
//   - Range reads, so an S3 bucket can mirror the CIFAR archives
//   - Multipart uploads through the feature/s3/manager uploader
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
