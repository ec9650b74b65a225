package match

// cartesianIndices enumerates every index combination within bounds
// (bounds[i] is the exclusive upper bound of dimension i), in the same
// least-significant-digit-first order as an odometer. A zero bound
// yields no combinations at all; zero dimensions yield exactly one, the
// empty combination.
func cartesianIndices(bounds []int) [][]int {
	for _, b := range bounds {
		if b == 0 {
			return nil
		}
	}
	if len(bounds) == 0 {
		return [][]int{{}}
	}

	current := make([]int, len(bounds))
	var out [][]int
	for {
		combo := make([]int, len(current))
		copy(combo, current)
		out = append(out, combo)

		i := 0
		for ; i < len(current); i++ {
			if current[i] < bounds[i]-1 {
				current[i]++
				break
			}
			current[i] = 0
		}
		if i == len(current) {
			break
		}
	}
	return out
}

func lengths(lists [][]Match) []int {
	out := make([]int, len(lists))
	for i, l := range lists {
		out[i] = len(l)
	}
	return out
}

func repeat(n, count int) []int {
	out := make([]int, count)
	for i := range out {
		out[i] = n
	}
	return out
}
