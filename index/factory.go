package index

import "fmt"

// NewByName constructs a placeholder Index for the named variant, with
// zero-value configuration — the caller is expected to immediately call
// Load on the result, which overwrites every field Load reads. This is
// the shape the combined-file loader needs: it only knows the variant's
// name tag at load time, not its original build parameters.
func NewByName(name string) (Index, error) {
	switch name {
	case "FlatIndex":
		return NewFlatIndex(), nil
	case "IVFIndex":
		return NewIVFIndex(0, 0, 0, 0), nil
	case "AnnoyIndex":
		return NewAnnoyIndex(0, 0, 0, false, 0), nil
	default:
		return nil, fmt.Errorf("unknown index variant %q", name)
	}
}
