// Package batch partitions the ticker universe into retrieval-sized groups.
package batch

// Partition splits symbols into consecutive groups of at most size entries,
// preserving input order and covering the input exactly once. A non-positive
// size or an empty input yields no groups.
func Partition(symbols []string, size int) [][]string {
	if size <= 0 || len(symbols) == 0 {
		return nil
	}
	groups := make([][]string, 0, (len(symbols)+size-1)/size)
	for start := 0; start < len(symbols); start += size {
		end := start + size
		if end > len(symbols) {
			end = len(symbols)
		}
		groups = append(groups, symbols[start:end])
	}
	return groups
}
