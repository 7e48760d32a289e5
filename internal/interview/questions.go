package interview

import (
	"fmt"
	"strings"

	"github.com/talentscout/screener/internal/candidate"
)

// questionLevel names the difficulty tier of the n-th technical question.
func questionLevel(n int) string {
	switch n {
	case 2:
		return "Intermediate"
	case 3:
		return "Advanced"
	case 4:
		return "Scenario-based"
	case 5:
		return "Optimization"
	default:
		return "Follow-up"
	}
}

// primaryTech returns the first technology from a comma separated stack.
func primaryTech(stack string) string {
	first, _, _ := strings.Cut(stack, ",")
	first = strings.TrimSpace(first)
	if first == "" {
		return "your primary technology"
	}
	return first
}

// nameSuffix renders ", Jane" when the name is known and nothing otherwise,
// so templates read naturally either way.
func nameSuffix(rec *candidate.Record) string {
	if rec.FullName == "" {
		return ""
	}
	return ", " + rec.FullName
}

func firstTechnicalQuestion(rec *candidate.Record) string {
	return fmt.Sprintf("Thank you for sharing your details%s! "+
		"I can see you have experience with %s. Let's do a quick technical assessment.\n\n"+
		"**Question 1 (Basic):** Can you explain what %s is and what it's primarily used for?",
		nameSuffix(rec), rec.TechStack, primaryTech(rec.TechStack))
}

func nextTechnicalQuestion(n int, stack string) string {
	return fmt.Sprintf("Thanks for that explanation! Let's move to the next question.\n\n"+
		"**Question %d (%s):** Please describe a challenging situation you encountered "+
		"when working with %s, and how you resolved it.",
		n, questionLevel(n), primaryTech(stack))
}

// missingFieldQuestion builds the follow-up used when a reply tries to
// close while required fields are still blank. With several fields
// missing it asks for all of them at once, otherwise it asks a question
// tailored to the single remaining field.
func missingFieldQuestion(rec *candidate.Record, missing []string) string {
	if len(missing) > 1 {
		var b strings.Builder
		fmt.Fprintf(&b, "Thanks%s! I still need a few more details. "+
			"Could you please provide the following:\n", nameSuffix(rec))
		for _, field := range missing {
			fmt.Fprintf(&b, "\n- %s", field)
		}
		return b.String()
	}

	switch missing[0] {
	case "Full Name":
		return "Could you please tell me your full name?"
	case "Email":
		return fmt.Sprintf("Thanks%s! Could you please share your email address?", nameSuffix(rec))
	case "Phone":
		return "What's the best phone number to reach you?"
	case "Years Of Experience":
		return "How many years of experience do you have in the tech industry?"
	case "Desired Positions":
		return "What position(s) are you interested in applying for?"
	case "Current Location":
		return "Where are you currently located?"
	case "Tech Stack":
		return "Could you tell me about your tech stack? (programming languages, frameworks, databases, and tools)"
	default:
		return fmt.Sprintf("Could you please provide your %s?", strings.ToLower(missing[0]))
	}
}
