package types

// Split labels recognized by the splits table CHECK constraint.
const (
	SplitTrain    = "train"
	SplitVal      = "val"
	SplitTrainval = "trainval"
	SplitTest     = "test"
)

// validSplits is the set of recognized split labels.
var validSplits = map[string]bool{
	SplitTrain:    true,
	SplitVal:      true,
	SplitTrainval: true,
	SplitTest:     true,
}

// AllSplits lists the split labels in their conventional order.
var AllSplits = []string{SplitTrain, SplitVal, SplitTrainval, SplitTest}

// ValidSplit reports whether s is a recognized split label.
func ValidSplit(s string) bool {
	return validSplits[s]
}
