package match

import (
	"strings"
	"testing"

	"go-hireloop-client/internal/models"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		job      models.JobPosting
		ctx      Context
		expected int
	}{
		{
			name: "all categories hit",
			job: models.JobPosting{
				Title:          "Backend Engineer",
				RequiredSkills: []string{"Go", "PostgreSQL"},
				Location:       "Berlin",
				Industry:       "fintech",
				WorkType:       "remote",
				Experience:     "mid",
				Salary:         &models.Salary{Min: 60000, Max: 90000, Currency: "EUR"},
			},
			ctx: Context{
				Skills:          []string{"Golang", "PostgreSQL"},
				Location:        "berlin",
				Industry:        "Fintech",
				WorkType:        "Remote",
				ExperienceLevel: "Mid",
				SalaryMin:       50000,
				SalaryMax:       80000,
			},
			expected: 100,
		},
		{
			name: "half the required skills, nothing else",
			job: models.JobPosting{
				RequiredSkills: []string{"React", "Node.js"},
			},
			ctx:      Context{Skills: []string{"React.js"}},
			expected: 18, // 1/2 * 35 = 17.5, rounded
		},
		{
			name:     "empty required skills is zero, not a free pass",
			job:      models.JobPosting{RequiredSkills: []string{}},
			ctx:      Context{Skills: []string{"Go", "Docker"}},
			expected: 0,
		},
		{
			name:     "empty candidate skills",
			job:      models.JobPosting{RequiredSkills: []string{"Go"}},
			ctx:      Context{},
			expected: 0,
		},
		{
			name:     "surplus candidate matches are capped at the category weight",
			job:      models.JobPosting{RequiredSkills: []string{"React"}},
			ctx:      Context{Skills: []string{"React", "React.js", "React Native"}},
			expected: 35,
		},
		{
			name:     "location only",
			job:      models.JobPosting{Location: "Hồ Chí Minh"},
			ctx:      Context{Location: "ho chi minh"},
			expected: 15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := Score(&tt.job, tt.ctx)
			if score != tt.expected {
				t.Errorf("got %d, want %d", score, tt.expected)
			}
		})
	}
}

func TestScoreCaseSymmetry(t *testing.T) {
	job := &models.JobPosting{RequiredSkills: []string{"Go", "Kubernetes", "gRPC"}}
	skills := []string{"golang", "kubernetes", "grpc", "terraform"}

	upper := make([]string, len(skills))
	for i, s := range skills {
		upper[i] = strings.ToUpper(s)
	}

	got := Score(job, Context{Skills: skills})
	gotUpper := Score(job, Context{Skills: upper})
	if got != gotUpper {
		t.Errorf("score changed under case change: %d vs %d", got, gotUpper)
	}
}

func TestFuzzySkill(t *testing.T) {
	tests := []struct {
		a, b     string
		expected bool
	}{
		{"React.js", "React", true},
		{"react", "REACT.JS", true},
		// Known over-match on short tokens, preserved on purpose.
		{"Go", "Django", true},
		{"Golang", "Go", true},
		{"Rust", "Python", false},
		{"", "Go", false},
	}
	for _, tt := range tests {
		if got := FuzzySkill(tt.a, tt.b); got != tt.expected {
			t.Errorf("FuzzySkill(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.expected)
		}
	}
}

func TestEffectivePrefersAIScore(t *testing.T) {
	ai := 87
	job := &models.JobPosting{RequiredSkills: []string{"Go"}, AIScore: &ai}
	ctx := Context{Skills: []string{"Go"}}

	if got := Effective(job, ctx, true); got != 87 {
		t.Errorf("AI mode on: got %d, want 87", got)
	}
	if got := Effective(job, ctx, false); got != 35 {
		t.Errorf("AI mode off: got %d, want local 35", got)
	}

	// Without a backend score the local calculator is the fallback either way.
	job.AIScore = nil
	if got := Effective(job, ctx, true); got != 35 {
		t.Errorf("AI mode on, no score: got %d, want local 35", got)
	}
}
