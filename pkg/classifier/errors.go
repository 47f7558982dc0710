package classifier

import "errors"

// Training and inference errors.
var (
	ErrEmptyTrainingSet  = errors.New("training set is empty")
	ErrDimensionMismatch = errors.New("feature dimension mismatch")
	ErrDegenerateLabels  = errors.New("labels contain a single class")
	ErrNonFinite         = errors.New("feature vector contains non-finite values")
)
