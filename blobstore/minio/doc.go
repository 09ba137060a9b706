// Package minio provides a BlobStore implementation using the MinIO client.
//
// It works with MinIO and any S3-compatible server (Ceph, Garage,
// SeaweedFS), either as a mirror of the CIFAR archives or as a publish
// target for a built dataset.
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	mirror := minioblob.NewStore(client, "datasets", "cifar/")
//	err = pascifar.Build(ctx, pascifar.WithOrigin(mirror))
package minio
