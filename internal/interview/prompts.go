package interview

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"github.com/talentscout/screener/internal/candidate"
)

//go:embed prompt.md
var systemPrompt string

const greetingPrompt = `Start the conversation by greeting the candidate and introducing yourself as TalentScout's AI Hiring Assistant.
Briefly explain the screening process, then ask for ALL of the following information in ONE message:
- Full name
- Email address
- Phone number
- Years of experience in tech
- Desired position(s)
- Current location
- Tech stack (programming languages, frameworks, databases, tools they work with)

Make it friendly and professional. Format it clearly so they know what information to provide.`

const fallbackGreeting = `Hello! I'm TalentScout's AI Hiring Assistant. I'll be conducting your initial screening today.

To get started, please provide the following information:

1. **Full Name**
2. **Email Address**
3. **Phone Number**
4. **Years of Experience** in tech
5. **Desired Position(s)** you're applying for
6. **Current Location**
7. **Tech Stack** (programming languages, frameworks, databases, tools)

Feel free to share all the details in your response!`

const apologyResponse = "I apologize, but I encountered a brief technical issue. " +
	"Could you please repeat your last response? " +
	"I want to make sure I capture everything correctly."

func closingMessage(rec *candidate.Record) string {
	return fmt.Sprintf(`Thank you so much for taking the time to speak with me today, %s!

I've collected all the information needed for your initial screening. Here's what happens next:

1. Our recruitment team will review your responses within 2-3 business days
2. If your profile matches our current openings, a recruiter will reach out to schedule a detailed interview
3. You'll receive an email confirmation with a summary of today's conversation

We appreciate your interest in joining our client companies through TalentScout. Best of luck with your application!

Feel free to reach out if you have any questions. Have a great day!`, rec.NameOrFallback("there"))
}

// buildContextPayload wraps the candidate's message with the current
// collection state so the model knows exactly what to ask for next.
func buildContextPayload(message string, rec *candidate.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Candidate's message: %s\n\n", message)

	var collected, missing []string
	for _, field := range candidate.RequiredFields() {
		if value := rec.Get(field); value != "" {
			collected = append(collected, fmt.Sprintf("- %s: %s", candidate.DisplayName(field), value))
		} else {
			missing = append(missing, candidate.DisplayName(field))
		}
	}

	if len(collected) > 0 {
		b.WriteString("Information already collected:\n")
		b.WriteString(strings.Join(collected, "\n"))
		b.WriteString("\n\n")
	}

	if len(missing) > 0 {
		fmt.Fprintf(&b, "STILL NEED TO COLLECT (DO NOT END CONVERSATION): %s\n", strings.Join(missing, ", "))
		b.WriteString("You MUST ask for the next missing piece of information. Do NOT skip any fields.\n\n")
	}

	switch {
	case len(missing) == 0 && rec.TechStack != "" && !rec.TechPhaseStarted:
		b.WriteString("All basic information collected! Now you MUST ask technical questions.\n")
		b.WriteString(technicalQuestionsPrompt(rec.TechStack, rec.YearsOfExperience))
	case len(missing) > 0 && rec.TechStack != "":
		b.WriteString("Note: Tech stack is provided but other required information is still missing. ")
		b.WriteString("Continue collecting the missing information before asking technical questions.\n\n")
	}

	b.WriteString("\nRespond appropriately to continue the screening process. Ask for the NEXT missing piece of information.")
	return b.String()
}

// technicalQuestionsPrompt instructs the model to begin the technical
// assessment, calibrating difficulty to the candidate's experience.
func technicalQuestionsPrompt(stack, years string) string {
	n, err := strconv.Atoi(strings.TrimSpace(years))
	if err != nil {
		n = 0
	}

	var difficulty, focus string
	switch {
	case n < 2:
		difficulty = "beginner to intermediate"
		focus = "fundamental concepts and basic practical scenarios"
	case n < 5:
		difficulty = "intermediate"
		focus = "practical problem-solving and common patterns"
	default:
		difficulty = "intermediate to advanced"
		focus = "architecture decisions, optimization, and complex scenarios"
	}

	return fmt.Sprintf(`Based on the candidate's tech stack: %s

IMPORTANT: Ask ONLY ONE question now. Do not list multiple questions.

The candidate has %d years of experience.
Current difficulty level: %s
Focus area: %s

Rules:
1. Ask only ONE question in your response
2. Start with a SIMPLE/BASIC question first
3. After they answer, you'll ask the next question (progressing to intermediate, then advanced)
4. Focus on their primary/first-listed technology first

Ask your FIRST question now - make it a simple, fundamental question about %s.`,
		stack, n, difficulty, focus, primaryTech(stack))
}
