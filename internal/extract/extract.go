// Package extract fills candidate record fields from free-form message text
// using ordered, deterministic pattern matching. Fields already present on the
// record are never overwritten.
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/talentscout/screener/internal/candidate"
)

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phoneRe = regexp.MustCompile(`\b(\d{10,})\b`)

	// Ordered most-specific first. The bare 1-2 digit fallback is last and
	// low-confidence: a lone small number can be misread as experience. That
	// trade-off is intentional and covered by tests.
	experienceRes = []*regexp.Regexp{
		regexp.MustCompile(`\b(\d{1,2})\s*\+?\s*years?\b`),
		regexp.MustCompile(`\bexperience[:\s]+(\d{1,2})\b`),
		regexp.MustCompile(`\b(\d{1,2})\s*yrs?\b`),
		regexp.MustCompile(`\b(\d{1,2})\b`),
	}

	maxExperienceYears = 50
)

// Apply extracts previously-empty fields from message into a copy of current.
// Each matched substring is consumed from a working copy of the text so later,
// less specific steps see a cleaner residual.
func Apply(message string, current candidate.Record) candidate.Record {
	updated := current.Clone()
	working := strings.TrimSpace(message)

	if m := emailRe.FindString(working); m != "" {
		if updated.Email == "" {
			updated.Set(candidate.FieldEmail, m)
			working = strings.ReplaceAll(working, m, " ")
		}
	}

	if m := phoneRe.FindStringSubmatch(working); m != nil {
		if updated.Phone == "" {
			updated.Set(candidate.FieldPhone, m[1])
			working = strings.ReplaceAll(working, m[0], " ")
		}
	}

	working = consumeExperience(working, &updated)

	words := strings.Fields(working)

	var nameWords []string
	var remaining []string

	for i, word := range words {
		lower := strings.ToLower(strings.TrimSpace(word))
		if len(lower) < 2 {
			continue
		}

		pair := ""
		if i > 0 {
			pair = strings.ToLower(words[i-1]) + " " + lower
		}
		if locations.contains(lower) || (pair != "" && locations.contains(pair)) {
			if updated.CurrentLocation == "" {
				updated.Set(candidate.FieldCurrentLocation, titleCase(word))
				continue
			}
		}

		if !containsDigit(word) &&
			!techTerms.contains(lower) &&
			!locations.contains(lower) &&
			len(nameWords) < 3 &&
			i < 4 {
			nameWords = append(nameWords, word)
		} else {
			remaining = append(remaining, word)
		}
	}

	if len(nameWords) > 0 && updated.FullName == "" {
		updated.Set(candidate.FieldFullName, titleCase(strings.Join(nameWords, " ")))
	}

	if updated.CurrentLocation == "" {
		for _, word := range remaining {
			if locations.contains(strings.ToLower(word)) {
				updated.Set(candidate.FieldCurrentLocation, titleCase(word))
				break
			}
		}
	}

	if updated.DesiredPositions == "" {
		var posWords []string
		for _, word := range remaining {
			if positions.contains(strings.ToLower(word)) {
				posWords = append(posWords, word)
			}
		}
		if len(posWords) > 0 {
			updated.Set(candidate.FieldDesiredPositions, titleCase(strings.Join(posWords, " ")))
		}
	}

	if updated.TechStack == "" {
		var techFound []string
		for _, word := range remaining {
			if stackTerms.contains(strings.ToLower(word)) {
				techFound = append(techFound, titleCase(word))
			}
		}
		if len(techFound) > 0 {
			updated.Set(candidate.FieldTechStack, strings.Join(techFound, ", "))
		}
	}

	// Whatever survived every other step is taken as the location. This is the
	// lowest-confidence guess and only fires when the keyword list missed.
	if updated.CurrentLocation == "" {
		var leftovers []string
		for _, word := range remaining {
			lower := strings.ToLower(word)
			if !stackTerms.contains(lower) &&
				!positions.contains(lower) &&
				len(word) > 2 &&
				!containsDigit(word) {
				leftovers = append(leftovers, word)
			}
		}
		if len(leftovers) > 0 {
			updated.Set(candidate.FieldCurrentLocation, titleCase(strings.Join(leftovers, " ")))
		}
	}

	return updated
}

// consumeExperience tries the ordered experience patterns against the working
// text. The first pattern whose captured value is plausible (<= 50) wins, and
// the matched token is removed so it cannot be reclaimed by later steps.
func consumeExperience(working string, rec *candidate.Record) string {
	if rec.YearsOfExperience != "" {
		return working
	}

	lowered := strings.ToLower(working)
	for _, re := range experienceRes {
		m := re.FindStringSubmatch(lowered)
		if m == nil {
			continue
		}
		years, err := strconv.Atoi(m[1])
		if err != nil || years > maxExperienceYears {
			continue
		}

		rec.Set(candidate.FieldYearsOfExperience, m[1])

		tokenRe := regexp.MustCompile(`\b` + m[1] + `\b`)
		if loc := tokenRe.FindStringIndex(working); loc != nil {
			working = working[:loc[0]] + " " + working[loc[1]:]
		}
		break
	}

	return working
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// titleCase capitalizes the first letter of every word and lowercases the
// rest, e.g. "new york" -> "New York", "jAnE" -> "Jane".
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) && !prevLetter:
			b.WriteRune(unicode.ToUpper(r))
			prevLetter = true
		case unicode.IsLetter(r):
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}
