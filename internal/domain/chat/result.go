package chat

// Result is the composed reply for one user message. IsAllowed is nil when
// no food could be judged.
type Result struct {
	IsAllowed *bool    `json:"isAllowed"`
	Response  string   `json:"response"`
	FoodItems []string `json:"foodItems"`
}

func undecided(response string) Result {
	return Result{Response: response, FoodItems: []string{}}
}

func decided(allowed bool, response string, foods []string) Result {
	return Result{IsAllowed: &allowed, Response: response, FoodItems: foods}
}
