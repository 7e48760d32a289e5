package extract

// Keyword pools used by the extractor. Membership is checked on lowercased
// whole words; two-word location phrases are matched against adjacent word
// pairs. The lists are closed on purpose: extraction is deterministic pattern
// matching, not language understanding.

// techTerms disqualify a word from being part of the candidate's name.
var techTerms = newWordSet(
	"react", "node", "python", "java", "javascript", "typescript", "angular",
	"vue", "django", "flask", "spring", "docker", "kubernetes", "aws", "sql",
	"postgresql", "mongodb", "redis", "frontend", "backend", "fullstack",
	"developer", "engineer", "senior", "junior", "lead", "manager",
	"c++", "c#", "ruby", "go", "rust", "swift", "kotlin", "php", "html", "css",
	"git", "linux", "cloud", "azure", "gcp", "devops", "machine", "learning",
)

// locations is the closed list of recognized city/region names.
var locations = newWordSet(
	"delhi", "mumbai", "bangalore", "bengaluru", "hyderabad", "chennai",
	"pune", "kolkata", "noida", "gurgaon", "gurugram", "uk", "usa", "united states",
	"india", "london", "new york", "san francisco", "california", "texas",
	"berlin", "toronto", "canada", "australia", "germany", "remote",
	"bangkok", "singapore", "dubai", "paris", "tokyo",
)

// positions are role and seniority words collected into desired_positions.
var positions = newWordSet(
	"frontend", "backend", "fullstack", "full stack", "devops", "developer",
	"engineer", "senior", "junior", "lead", "manager", "architect", "qa",
	"tester", "data", "ml", "ai", "mobile", "ios", "android", "web",
)

// stackTerms are technology names collected into tech_stack.
var stackTerms = newWordSet(
	"react", "node", "nodejs", "python", "java", "javascript", "typescript",
	"angular", "vue", "django", "flask", "spring", "docker", "kubernetes",
	"aws", "azure", "gcp", "sql", "postgresql", "mysql", "mongodb", "redis",
	"graphql", "rest", "express", "next", "nextjs", "nuxt", "svelte",
	"tailwind", "css", "html", "go", "golang", "rust", "c++", "cpp", "c#",
	"ruby", "rails", "php", "laravel", "swift", "kotlin", "flutter", "dart",
)

type wordSet map[string]struct{}

func newWordSet(words ...string) wordSet {
	s := make(wordSet, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

func (s wordSet) contains(w string) bool {
	_, ok := s[w]
	return ok
}
