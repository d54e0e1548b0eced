package pricing

// CountItems aggregates the occurrences of every symbol in items. Every rune
// counts, whitespace and separators included; a symbol no rule covers simply
// prices to zero later. An empty input yields an empty mapping.
func CountItems(items string) map[rune]int64 {
	counts := make(map[rune]int64)
	for _, c := range items {
		counts[c]++
	}
	return counts
}
