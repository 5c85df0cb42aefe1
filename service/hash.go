package service

// Seed sums the code points of s. Anagrams collide ("ab.com" and "ba.com"
// share a seed); recorded reports depend on this exact function, so it is
// kept as is rather than swapped for a stronger hash.
func Seed(s string) int {
	sum := 0
	for _, r := range s {
		sum += int(r)
	}
	return sum
}
