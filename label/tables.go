package label

// Dataset identifies one source label vocabulary.
//
// CIFAR-100 records carry two labels (fine and coarse), so each of its
// vocabularies is a separate Dataset.
type Dataset string

const (
	CIFAR10        Dataset = "cifar10"
	CIFAR100Fine   Dataset = "cifar100-fine"
	CIFAR100Coarse Dataset = "cifar100-coarse"
)

// Tables holds the three static label tables a Resolver is built from.
type Tables struct {
	// Selection lists, per dataset, the source names kept in the output.
	Selection map[Dataset][]string

	// Remap maps a selected source name to its target name, per dataset.
	Remap map[Dataset]map[string]string

	// Target is the ordered target taxonomy. The index of a name is its
	// numeric label id.
	Target []string
}

// VOC2012 is the PASCAL VOC 2012 class list in canonical order.
var VOC2012 = []string{
	"aeroplane",
	"bicycle",
	"bird",
	"boat",
	"bottle",
	"bus",
	"car",
	"cat",
	"chair",
	"cow",
	"diningtable",
	"dog",
	"horse",
	"motorbike",
	"person",
	"pottedplant",
	"sheep",
	"sofa",
	"train",
	"tvmonitor",
}

// PASCIFAR returns the tables that map CIFAR-10 and CIFAR-100 onto VOC2012.
//
// cow, pottedplant and sheep have no CIFAR counterpart and stay empty.
func PASCIFAR() Tables {
	remap := map[Dataset]map[string]string{
		CIFAR10: {
			"airplane":   "aeroplane",
			"automobile": "car",
			"bird":       "bird",
			"cat":        "cat",
			"dog":        "dog",
			"horse":      "horse",
			"ship":       "boat",
		},
		CIFAR100Fine: {
			"bicycle":    "bicycle",
			"bottle":     "bottle",
			"bus":        "bus",
			"chair":      "chair",
			"couch":      "sofa",
			"motorcycle": "motorbike",
			"table":      "diningtable",
			"television": "tvmonitor",
			"train":      "train",
		},
		CIFAR100Coarse: {
			"people": "person",
		},
	}

	return Tables{
		Selection: map[Dataset][]string{
			CIFAR10:        {"airplane", "automobile", "bird", "cat", "dog", "horse", "ship"},
			CIFAR100Fine:   {"bicycle", "bottle", "bus", "chair", "table", "motorcycle", "couch", "train", "television"},
			CIFAR100Coarse: {"people"},
		},
		Remap:  remap,
		Target: append([]string(nil), VOC2012...),
	}
}
