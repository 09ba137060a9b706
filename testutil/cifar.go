package testutil

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/hupe1980/pascifar/blobstore"
)

// CIFAR10Classes is the CIFAR-10 label vocabulary in index order.
var CIFAR10Classes = []string{
	"airplane", "automobile", "bird", "cat", "deer",
	"dog", "frog", "horse", "ship", "truck",
}

// CIFAR100Coarse is the CIFAR-100 coarse label vocabulary in index order.
var CIFAR100Coarse = []string{
	"aquatic_mammals", "fish", "flowers", "food_containers",
	"fruit_and_vegetables", "household_electrical_devices",
	"household_furniture", "insects", "large_carnivores",
	"large_man-made_outdoor_things", "large_natural_outdoor_scenes",
	"large_omnivores_and_herbivores", "medium_mammals",
	"non-insect_invertebrates", "people", "reptiles", "small_mammals",
	"trees", "vehicles_1", "vehicles_2",
}

// CIFAR100Fine is the CIFAR-100 fine label vocabulary in index order.
var CIFAR100Fine = []string{
	"apple", "aquarium_fish", "baby", "bear", "beaver", "bed", "bee", "beetle",
	"bicycle", "bottle", "bowl", "boy", "bridge", "bus", "butterfly", "camel",
	"can", "castle", "caterpillar", "cattle", "chair", "chimpanzee", "clock",
	"cloud", "cockroach", "couch", "crab", "crocodile", "cup", "dinosaur",
	"dolphin", "elephant", "flatfish", "forest", "fox", "girl", "hamster",
	"house", "kangaroo", "keyboard", "lamp", "lawn_mower", "leopard", "lion",
	"lizard", "lobster", "man", "maple_tree", "motorcycle", "mountain", "mouse",
	"mushroom", "oak_tree", "orange", "orchid", "otter", "palm_tree", "pear",
	"pickup_truck", "pine_tree", "plain", "plate", "poppy", "porcupine",
	"possum", "rabbit", "raccoon", "ray", "road", "rocket", "rose", "sea",
	"seal", "shark", "shrew", "skunk", "skyscraper", "snail", "snake", "spider",
	"squirrel", "streetcar", "sunflower", "sweet_pepper", "table", "tank",
	"telephone", "television", "tiger", "tractor", "train", "trout", "tulip",
	"turtle", "wardrobe", "whale", "willow_tree", "wolf", "woman", "worm",
}

// CIFAR10Entry is one synthetic CIFAR-10 record.
type CIFAR10Entry struct {
	Class  string
	Pixels []byte
}

// CIFAR10Fixture builds the files of an extracted cifar-10-batches-bin
// directory. Batches holds up to five training batches; missing batches
// are written empty.
type CIFAR10Fixture struct {
	Classes []string
	Batches [5][]CIFAR10Entry
}

// Add appends an entry to batch i (0-based).
func (fx *CIFAR10Fixture) Add(batch int, entries ...CIFAR10Entry) {
	fx.Batches[batch] = append(fx.Batches[batch], entries...)
}

// Files returns the directory content keyed by file name.
func (fx *CIFAR10Fixture) Files() (map[string][]byte, error) {
	files := map[string][]byte{
		"batches.meta.txt": vocabulary(fx.Classes),
	}
	for i, entries := range fx.Batches {
		var buf bytes.Buffer
		for _, e := range entries {
			idx, err := index(fx.Classes, e.Class)
			if err != nil {
				return nil, err
			}
			buf.WriteByte(idx)
			buf.Write(pixels(e.Pixels))
		}
		files[fmt.Sprintf("data_batch_%d.bin", i+1)] = buf.Bytes()
	}
	return files, nil
}

// CIFAR100Entry is one synthetic CIFAR-100 record.
type CIFAR100Entry struct {
	Coarse string
	Fine   string
	Pixels []byte
}

// CIFAR100Fixture builds the files of an extracted cifar-100-binary
// directory.
type CIFAR100Fixture struct {
	Fine   []string
	Coarse []string
	Train  []CIFAR100Entry
}

// Files returns the directory content keyed by file name.
func (fx *CIFAR100Fixture) Files() (map[string][]byte, error) {
	var buf bytes.Buffer
	for _, e := range fx.Train {
		coarse, err := index(fx.Coarse, e.Coarse)
		if err != nil {
			return nil, err
		}
		fine, err := index(fx.Fine, e.Fine)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(coarse)
		buf.WriteByte(fine)
		buf.Write(pixels(e.Pixels))
	}
	return map[string][]byte{
		"fine_label_names.txt":   vocabulary(fx.Fine),
		"coarse_label_names.txt": vocabulary(fx.Coarse),
		"train.bin":              buf.Bytes(),
	}, nil
}

// Put writes files into store below dir.
func Put(ctx context.Context, store blobstore.BlobStore, dir string, files map[string][]byte) error {
	for name, data := range files {
		if err := store.Put(ctx, path.Join(dir, name), data); err != nil {
			return err
		}
	}
	return nil
}

// Prefix returns files with every name placed below dir.
func Prefix(dir string, files map[string][]byte) map[string][]byte {
	out := make(map[string][]byte, len(files))
	for name, data := range files {
		out[path.Join(dir, name)] = data
	}
	return out
}

func vocabulary(names []string) []byte {
	// The real metadata files end with blank lines.
	return []byte(strings.Join(names, "\n") + "\n\n")
}

func index(names []string, name string) (byte, error) {
	i := slices.Index(names, name)
	if i < 0 || i > 255 {
		return 0, fmt.Errorf("testutil: unknown class %q", name)
	}
	return byte(i), nil
}

func pixels(p []byte) []byte {
	if len(p) == PixelBytes {
		return p
	}
	out := make([]byte, PixelBytes)
	copy(out, p)
	return out
}
