package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-hireloop-client/internal/models"
)

func job(id, title string, skills ...string) models.JobPosting {
	return models.JobPosting{
		ID:             id,
		Title:          title,
		Company:        &models.Company{Name: "Acme"},
		RequiredSkills: skills,
	}
}

func TestNormalizeDropsAndRelabels(t *testing.T) {
	raw := []models.JobPosting{
		{ID: "j1"}, // missing title and company
		{Title: "No ID"},
		{ID: "j2", Title: "Backend Dev", Company: &models.Company{Name: "Acme"}},
		{ID: "j3", Company: &models.Company{}}, // company present but unnamed
	}

	jobs := Normalize(raw)
	require.Len(t, jobs, 3)
	assert.Equal(t, "Untitled Position", jobs[0].Title)
	assert.Equal(t, "Unknown Company", jobs[0].Company.Name)
	assert.Equal(t, "Backend Dev", jobs[1].Title)
	assert.Equal(t, "Unknown Company", jobs[2].Company.Name)
}

func TestPartitionComplete(t *testing.T) {
	raw := []models.JobPosting{
		job("j1", "Go Dev", "Go"),
		job("j2", "Designer", "Figma"),
		job("j3", "Unknown Stack"), // no requiredSkills data
		{Title: "malformed"},
	}

	res := Run(raw, "", Filters{}, []string{"Golang"}, false)

	// Every normalized job lands in exactly one group and the concatenated
	// list covers the whole normalized input.
	require.Len(t, res.Jobs, 3)
	assert.Len(t, res.Matching, 1)
	assert.Len(t, res.NonMatching, 2)

	seen := map[string]bool{}
	for _, j := range res.Jobs {
		assert.False(t, seen[j.ID], "job %s appears twice", j.ID)
		seen[j.ID] = true
	}
}

// "Golang" contains "go" after folding, so under bidirectional substring
// containment the Go Dev posting is a skill match. The fuzziness is part of
// the contract, not an accident to correct.
func TestPartitionSubstringFuzziness(t *testing.T) {
	res := Run([]models.JobPosting{job("j1", "Go Dev", "Go")}, "", Filters{}, []string{"Golang"}, false)

	require.Len(t, res.Matching, 1)
	assert.Empty(t, res.NonMatching)

	// No containment in either direction keeps the job out.
	res = Run([]models.JobPosting{job("j2", "Rust Dev", "Rust")}, "", Filters{}, []string{"Golang"}, false)
	assert.Empty(t, res.Matching)
	require.Len(t, res.NonMatching, 1)
}

func TestRunIdempotent(t *testing.T) {
	raw := []models.JobPosting{
		job("j1", "Go Dev", "Go", "Docker"),
		job("j2", "Frontend Dev", "React"),
		job("j3", "Data Engineer", "Python", "Spark"),
	}
	f := Filters{Skills: []string{"go"}}

	first := Run(raw, "dev", f, []string{"Go", "React"}, false)
	second := Run(raw, "dev", f, []string{"Go", "React"}, false)
	assert.Equal(t, first, second)
}

func TestTextFilter(t *testing.T) {
	raw := []models.JobPosting{
		job("j1", "Senior Gopher"),
		job("j2", "Designer"),
		{ID: "j3", Title: "Analyst", Company: &models.Company{Name: "Gopher Labs"}},
	}

	res := Run(raw, "gopher", Filters{}, nil, false)
	require.Len(t, res.Jobs, 2)
	assert.Equal(t, "j1", res.Jobs[0].ID)
	assert.Equal(t, "j3", res.Jobs[1].ID)
}

func TestSkillsFilterIsConjunctive(t *testing.T) {
	raw := []models.JobPosting{
		job("j1", "Platform", "Go", "Kubernetes"),
		job("j2", "Backend", "Go"),
	}

	// Both panel skills must match; j2 lacks Kubernetes.
	res := Run(raw, "", Filters{Skills: []string{"Go", "Kubernetes"}}, nil, false)
	require.Len(t, res.Jobs, 1)
	assert.Equal(t, "j1", res.Jobs[0].ID)
}

func TestFieldFiltersAnd(t *testing.T) {
	raw := []models.JobPosting{
		{ID: "j1", Title: "A", Company: &models.Company{Name: "x"}, Location: "Berlin", Type: "full-time"},
		{ID: "j2", Title: "B", Company: &models.Company{Name: "x"}, Location: "Berlin", Type: "contract"},
		{ID: "j3", Title: "C", Company: &models.Company{Name: "x"}, Location: "Munich", Type: "full-time"},
	}

	res := Run(raw, "", Filters{Location: "berlin", JobType: "Full-Time"}, nil, false)
	require.Len(t, res.Jobs, 1)
	assert.Equal(t, "j1", res.Jobs[0].ID)
}

func TestOrderingMatchingFirstScoreDescending(t *testing.T) {
	raw := []models.JobPosting{
		job("partial", "Ops", "Go", "Terraform", "AWS", "Azure"), // 1/4 skills
		job("none", "Designer", "Figma"),
		job("full", "Gopher", "Go"), // 1/1 skills
	}

	res := Run(raw, "", Filters{}, []string{"Go"}, false)
	require.Len(t, res.Jobs, 3)
	assert.Equal(t, "full", res.Jobs[0].ID)
	assert.Equal(t, "partial", res.Jobs[1].ID)
	assert.Equal(t, "none", res.Jobs[2].ID)
}

func TestAIScoreOverridesOrdering(t *testing.T) {
	low, high := 10, 95
	a := job("a", "Gopher", "Go")
	a.AIScore = &low
	b := job("b", "Ops", "Go", "Terraform", "AWS", "Azure")
	b.AIScore = &high

	res := Run([]models.JobPosting{a, b}, "", Filters{}, []string{"Go"}, true)
	require.Len(t, res.Jobs, 2)
	assert.Equal(t, "b", res.Jobs[0].ID, "backend score supersedes local calculation in AI mode")

	res = Run([]models.JobPosting{a, b}, "", Filters{}, []string{"Go"}, false)
	assert.Equal(t, "a", res.Jobs[0].ID, "local score decides when AI mode is off")
}
