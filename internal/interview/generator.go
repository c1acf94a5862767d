// Package interview generates practice questions and answer feedback
// locally. It is a stand-in for the backend coaching service: templated
// prompts and randomized-but-seeded scores, good enough to drive the
// practice UI offline and deterministic under test.
package interview

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/hireflux/cli/internal/types"
)

// Categories supported by the question bank.
const (
	CategoryBehavioral = "behavioral"
	CategoryTechnical  = "technical"
	CategorySystem     = "system-design"
)

var questionBank = map[string][]string{
	CategoryBehavioral: {
		"Tell me about a time you disagreed with a teammate on a %s decision. How was it resolved?",
		"Describe a %s project that failed. What would you do differently?",
		"How do you prioritize competing deadlines in your %s work?",
		"Give an example of feedback you received on your %s work that changed how you operate.",
	},
	CategoryTechnical: {
		"Walk me through debugging a production incident in a %s system you own.",
		"What trade-offs do you weigh when adding a dependency to a %s codebase?",
		"How do you approach testing a %s component with many external integrations?",
		"Explain a performance problem you solved in a %s service, start to finish.",
	},
	CategorySystem: {
		"Design the ingestion pipeline for a %s platform handling bursty traffic.",
		"How would you shard storage for a rapidly growing %s product?",
		"Sketch the failure modes of a %s system that depends on three upstream APIs.",
	},
}

var strengthPool = []string{
	"concrete example with measurable outcome",
	"clear ownership of the decision",
	"structured answer, easy to follow",
	"acknowledged trade-offs explicitly",
	"connected the story back to the role",
}

var improvePool = []string{
	"quantify the impact with numbers",
	"shorten the setup and get to the action sooner",
	"name the alternatives you rejected and why",
	"close with what you learned",
	"tie the example to the company's domain",
}

// Generator produces questions and feedback from a seeded random source so
// tests and replays are reproducible.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator. The same seed yields the same question
// and feedback sequence.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Categories lists the supported question categories.
func Categories() []string {
	return []string{CategoryBehavioral, CategoryTechnical, CategorySystem}
}

// Question picks a prompt for the given role and category. Unknown
// categories fall back to behavioral.
func (g *Generator) Question(role, category string) types.PracticeQuestion {
	prompts, ok := questionBank[category]
	if !ok {
		category = CategoryBehavioral
		prompts = questionBank[category]
	}
	if role == "" {
		role = "software engineering"
	}

	idx := g.rng.Intn(len(prompts))
	return types.PracticeQuestion{
		ID:       fmt.Sprintf("%s-%d", category, idx),
		Category: category,
		Role:     role,
		Prompt:   fmt.Sprintf(prompts[idx], role),
	}
}

// Feedback scores an answer. The score blends rough answer-shape heuristics
// (length, structure markers) with random jitter; it is presentation-grade,
// not an assessment.
func (g *Generator) Feedback(question types.PracticeQuestion, answer string) types.PracticeFeedback {
	score := 40

	words := len(strings.Fields(answer))
	switch {
	case words >= 150:
		score += 25
	case words >= 60:
		score += 20
	case words >= 20:
		score += 10
	}

	lower := strings.ToLower(answer)
	for _, marker := range []string{"result", "because", "learned", "measured", "trade-off", "tradeoff"} {
		if strings.Contains(lower, marker) {
			score += 3
		}
	}

	score += g.rng.Intn(11) // jitter
	if score > 100 {
		score = 100
	}

	return types.PracticeFeedback{
		QuestionID: question.ID,
		Score:      score,
		Summary:    summaryFor(score),
		Strengths:  g.pick(strengthPool, 2),
		Improve:    g.pick(improvePool, 2),
	}
}

func summaryFor(score int) string {
	switch {
	case score >= 85:
		return "Strong answer. Interview-ready on this question."
	case score >= 65:
		return "Good foundation. Tighten the structure and quantify outcomes."
	case score >= 45:
		return "Workable draft. Add a concrete example and a clear result."
	default:
		return "Needs work. Answer with a specific situation, action and result."
	}
}

// pick returns n distinct entries from pool in random order.
func (g *Generator) pick(pool []string, n int) []string {
	perm := g.rng.Perm(len(pool))
	if n > len(pool) {
		n = len(pool)
	}
	out := make([]string, 0, n)
	for _, idx := range perm[:n] {
		out = append(out, pool[idx])
	}
	return out
}
