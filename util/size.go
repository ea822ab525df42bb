package util

import (
	"fmt"
)

// HumanSize formats a byte count with a one-letter binary suffix and
// at most one decimal place: 536870912 -> "512M", 1610612736 -> "1.5G".
func HumanSize(bytes uint64) string {
	const letters = "BKMGTPE"

	shift := 10
	for ; shift <= 60; shift += 10 {
		if bytes < uint64(1)<<shift {
			break
		}
	}
	exp := shift - 10
	letter := letters[exp/10]
	if exp == 0 {
		return fmt.Sprintf("%d%c", bytes, letter)
	}

	dec := bytes / (uint64(1) << exp)
	frac := bytes % (uint64(1) << exp)
	if frac != 0 {
		frac = (frac/(uint64(1)<<(exp-10)) + 50) / 100
		if frac == 10 {
			dec++
			frac = 0
		}
	}
	if frac != 0 {
		return fmt.Sprintf("%d.%d%c", dec, frac, letter)
	}
	return fmt.Sprintf("%d%c", dec, letter)
}
