package flags

import (
	"fmt"

	"github.com/MrEthical07/bitmask"
)

// InferLength returns the minimal byte-aligned bit width able to address the highest of
// codes. Codes must be non-negative. An empty list, like a lone code 0, needs one bit and
// yields 8.
func InferLength(codes ...int) (int, error) {
	highest := 0
	for _, code := range codes {
		if code < 0 {
			return 0, fmt.Errorf("%w: flag codes must be non-negative, got %d", bitmask.ErrInvalidArgument, code)
		}
		highest = max(highest, code)
	}

	// position `highest` needs highest+1 slots, rounded up to whole bytes
	return (highest/8 + 1) * 8, nil
}
