// Package pascifar builds PASCIFAR, a PASCAL VOC 2012 flavored image
// dataset assembled from CIFAR-10 and CIFAR-100.
//
// # Quick Start
//
//	res, err := pascifar.Build(ctx, pascifar.WithWorkDir("."))
//	if err != nil {
//	    var se *pascifar.StageError
//	    if errors.As(err, &se) {
//	        log.Fatalf("%s failed: %v", se.Stage, se.Err)
//	    }
//	}
//	fmt.Println(res.Root, res.Counts.Total())
//
// Build runs four stages:
//
//  1. validate: the label tables are checked before anything is written.
//  2. acquire: the CIFAR binary archives are downloaded and unpacked into
//     the work directory unless their extracted directories exist.
//  3. assemble: records whose label maps to a VOC class are decoded and
//     written to <root>/<class>/<n>.png, n counting from 1 per class.
//  4. manifest: <root>/ts.csv lists every image with its VOC label id.
//
// An existing output root is treated as a finished build and skips all
// stages. A crash during assembly leaves a partial root that must be
// removed by hand.
//
// # Label ids
//
// Label ids are positions in the VOC 2012 class list. cow, pottedplant and
// sheep have no CIFAR counterpart; their ids never appear in the manifest
// and are not reused.
//
// # Mirrors and publishing
//
// Any blobstore.BlobStore can serve as the archive origin (WithOrigin), e.g.
// an S3 bucket or a MinIO server holding copies of the archives. Publish
// uploads a finished dataset to a blob store.
package pascifar
