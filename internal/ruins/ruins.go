// Package ruins solves the coin-ordering puzzle found in the ruins: the
// five coins, placed in some order into the five slots of the equation
// "_ + _ * _^2 + _^3 - _", must sum to 399.
package ruins

// coins are the five coin face values; order here is irrelevant, every
// permutation is tried.
var coins = [5]int{2, 3, 5, 7, 9}

// target is the equation's required result.
const target = 399

// names maps a coin's face value to the name engraved on it.
var names = map[int]string{
	2: "red",
	3: "corroded",
	5: "shiny",
	7: "concave",
	9: "blue",
}

// equation evaluates v0 + v1*v2^2 + v3^3 - v4 for a candidate ordering.
func equation(v [5]int) int {
	return v[0] + v[1]*v[2]*v[2] + v[3]*v[3]*v[3] - v[4]
}

// Name returns the coin name for a face value.
func Name(v int) string {
	return names[v]
}

// Solve exhaustively searches all 5! orderings of the five coins for the
// one satisfying the equation, returning the ordering and true on success.
// The search space is small enough (120 permutations) that exhaustive
// enumeration replaces the reference implementation's random shuffling.
func Solve() ([5]int, bool) {
	var found [5]int
	ok := false
	permute(coins, 0, func(v [5]int) bool {
		if equation(v) == target {
			found = v
			ok = true
			return false
		}
		return true
	})
	return found, ok
}

// permute generates every permutation of v in place by recursively
// swapping each remaining position into the front, invoking visit after
// each complete arrangement. visit returns false to stop the search early.
func permute(v [5]int, k int, visit func([5]int) bool) bool {
	if k == len(v) {
		return visit(v)
	}
	for i := k; i < len(v); i++ {
		v[k], v[i] = v[i], v[k]
		if !permute(v, k+1, visit) {
			return false
		}
		v[k], v[i] = v[i], v[k]
	}
	return true
}

// Commands renders the "use <coin> coin" command sequence for a solved
// ordering, in the order the coins must be placed.
func Commands(v [5]int) []string {
	out := make([]string, len(v))
	for i, c := range v {
		out[i] = "use " + Name(c) + " coin"
	}
	return out
}
