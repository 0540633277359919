package chat

import "sort"

// TopFoodsLimit caps how many foods Stats reports
const TopFoodsLimit = 10

// FoodCount is how often a food was asked about
type FoodCount struct {
	Food  string `json:"food"`
	Count int    `json:"count"`
}

// Stats summarises a user's chat history
type Stats struct {
	TotalQueries    int64       `json:"totalQueries"`
	AllowedFoods    int64       `json:"allowedFoods"`
	RestrictedFoods int64       `json:"restrictedFoods"`
	TopFoods        []FoodCount `json:"topFoods"`
}

// TopFoods counts food mentions across messages and returns the most
// frequent ones, ties broken alphabetically.
func TopFoods(foodLists [][]string, limit int) []FoodCount {
	counts := make(map[string]int)
	for _, foods := range foodLists {
		for _, f := range foods {
			counts[f]++
		}
	}

	out := make([]FoodCount, 0, len(counts))
	for f, n := range counts {
		out = append(out, FoodCount{Food: f, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Food < out[j].Food
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
