package policy

import "sort"

// CountryLevel is the grouping key used by the per-group tables.
type CountryLevel struct {
	Country string `json:"country"`
	Level   string `json:"level"`
}

func lessCountryLevel(a, b CountryLevel) bool {
	if a.Country != b.Country {
		return a.Country < b.Country
	}
	return a.Level < b.Level
}

func countryLevelKey(d Descriptor) (CountryLevel, bool) {
	if d.Country == "" || d.Level == "" {
		return CountryLevel{}, false
	}
	return CountryLevel{Country: d.Country, Level: d.Level}, true
}

// groupIndexes buckets item indexes by key, skipping items whose key is
// missing. Keys are returned in ascending order.
func groupIndexes[T any, K comparable](items []T, key func(T) (K, bool), less func(a, b K) bool) ([]K, map[K][]int) {
	groups := make(map[K][]int)
	var keys []K
	for i, item := range items {
		k, ok := key(item)
		if !ok {
			continue
		}
		if _, seen := groups[k]; !seen {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], i)
	}
	sort.Slice(keys, func(i, j int) bool { return less(keys[i], keys[j]) })
	return keys, groups
}
