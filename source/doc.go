// Package source reads labeled pixel records from the CIFAR binary
// distributions.
//
// A Source yields each record once through an iter.Seq2. Sources are lazy,
// finite and not restartable: the assembler does not care which dataset a
// record came from, only about its candidate labels and pixels.
//
//	src := source.CIFAR10("cifar-10-batches-bin")
//	for rec, err := range src.Records(ctx) {
//	    if err != nil { ... }
//	    _ = rec.Labels[0].Name
//	}
package source
