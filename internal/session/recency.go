package session

// pushRecent prepends item to items, removing any earlier entry with the same
// key and trimming the result to max entries. The most recent entry is always
// first.
func pushRecent[T any, K comparable](items []T, item T, key func(T) K, max int) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, item)
	k := key(item)
	for _, existing := range items {
		if key(existing) == k {
			continue
		}
		out = append(out, existing)
	}
	if max > 0 && len(out) > max {
		out = out[:max]
	}
	return out
}
