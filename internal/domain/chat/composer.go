// Package chat turns eligibility verdicts into chatbot replies and defines
// the stored chat history records.
package chat

import (
	"fmt"
	"strings"

	"github.com/nutrimate/v1/internal/domain/eligibility"
	"github.com/nutrimate/v1/internal/domain/food"
	"github.com/nutrimate/v1/internal/domain/profile"
)

const noFoodResponse = "I couldn't identify any specific food in your query. Could you please mention a food item? " +
	"For example: 'Can I eat carrot?' or 'I want pudding'."

// Composer answers "can I eat this" questions
type Composer struct {
	resolver  *food.Resolver
	evaluator *eligibility.Evaluator
	suggester *eligibility.Suggester
}

// NewComposer wires the resolver, evaluator and suggester together
func NewComposer(resolver *food.Resolver, evaluator *eligibility.Evaluator, suggester *eligibility.Suggester) *Composer {
	return &Composer{resolver: resolver, evaluator: evaluator, suggester: suggester}
}

// HandleQuery resolves the foods named in text and composes a reply
func (c *Composer) HandleQuery(text string, h profile.Health) Result {
	return c.Compose(c.resolver.Resolve(text), h)
}

// Compose builds the reply for already resolved food names
func (c *Composer) Compose(names []string, h profile.Health) Result {
	switch len(names) {
	case 0:
		return undecided(noFoodResponse)
	case 1:
		return c.composeSingle(names[0], h)
	default:
		return c.composeMany(names, h)
	}
}

func (c *Composer) composeSingle(name string, h profile.Health) Result {
	entry, ok := c.resolver.FindFood(name)
	if !ok {
		return undecided(fmt.Sprintf(
			`I don't have information about "%s" in my database yet. Please try another food item or consult your nutritionist.`,
			name,
		))
	}

	verdict := c.evaluator.Evaluate(entry, h)
	if verdict.IsAllowed {
		return decided(true, allowedResponse(name, entry, verdict), []string{name})
	}

	alternatives := c.suggester.SuggestAlternatives(entry, h)
	return decided(false, deniedResponse(name, verdict, alternatives), []string{name})
}

func (c *Composer) composeMany(names []string, h profile.Health) Result {
	var b strings.Builder
	fmt.Fprintf(&b, "I found multiple foods in your query: %s.\n\n", strings.Join(names, ", "))

	allAllowed := true
	for _, name := range names {
		entry, ok := c.resolver.FindFood(name)
		if !ok {
			continue
		}
		verdict := c.evaluator.Evaluate(entry, h)
		if verdict.IsAllowed {
			fmt.Fprintf(&b, "✅ **%s**: Allowed (%s cal)\n", name, eligibility.FormatAmount(entry.Calories))
			continue
		}
		allAllowed = false
		fmt.Fprintf(&b, "❌ **%s**: Not recommended - %s\n", name, verdict.FirstIssue())
	}

	return decided(allAllowed, b.String(), append([]string(nil), names...))
}

func allowedResponse(name string, e food.Entry, v eligibility.Verdict) string {
	var b strings.Builder
	fmt.Fprintf(&b, "✅ Yes, you can eat %s! ", name)

	fmt.Fprintf(&b, "It contains %s calories", eligibility.FormatAmount(e.Calories))
	if e.Protein > 5 {
		fmt.Fprintf(&b, ", %sg protein", eligibility.FormatAmount(e.Protein))
	}
	if e.Fiber > 3 {
		fmt.Fprintf(&b, ", %sg fiber", eligibility.FormatAmount(e.Fiber))
	}
	b.WriteString(". ")

	if len(e.HealthBenefits) > 0 {
		fmt.Fprintf(&b, "Good for: %s. ", strings.Join(e.HealthBenefits, ", "))
	}

	if len(v.Warnings) > 0 {
		fmt.Fprintf(&b, "\n\n⚠️ Note: %s", strings.Join(v.Warnings, " "))
	}

	if tip := portionTip(e); tip != "" {
		fmt.Fprintf(&b, "\n\n💡 Tip: %s", tip)
	}

	return b.String()
}

func deniedResponse(name string, v eligibility.Verdict, alternatives []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "❌ Sorry, %s is not recommended for you. ", name)
	b.WriteString(strings.Join(v.Issues, " "))
	b.WriteString(". ")

	if len(alternatives) > 0 {
		fmt.Fprintf(&b, "\n\n💡 Try these alternatives: %s.", strings.Join(alternatives, ", "))
	}

	return b.String()
}

func portionTip(e food.Entry) string {
	switch {
	case e.Category == food.CategoryDessert:
		return "Enjoy in moderation as an occasional treat."
	case e.Category == food.CategoryFruit && e.SugarContent() > eligibility.ModerateSugarGrams:
		return "Best consumed in morning or pre-workout."
	case e.Category == food.CategoryNut:
		return "A handful (20-30g) makes a great snack."
	default:
		return ""
	}
}
