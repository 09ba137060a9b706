// Package testutil provides testing utilities for PASCIFAR.
//
// This package is intended for use in tests only. It builds synthetic
// CIFAR binary batches and archives so the pipeline can run without the
// real datasets.
//
// # Random Pixels
//
//	rng := testutil.NewRNG(seed)
//	pixels := rng.Pixels() // 3072 channel-planar bytes
//
// # CIFAR Fixtures
//
//	fx := testutil.CIFAR10Fixture{Classes: testutil.CIFAR10Classes}
//	fx.Add(0, testutil.Entry("cat", rng.Pixels()))
//	files, _ := fx.Files()
//
// # Archives
//
//	data, _ := testutil.TarGz(files)
package testutil
