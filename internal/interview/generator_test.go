package interview

import (
	"strings"
	"testing"
)

func TestQuestion_UsesRoleAndCategory(t *testing.T) {
	g := NewGenerator(1)

	q := g.Question("backend engineering", CategoryTechnical)

	if q.Category != CategoryTechnical {
		t.Errorf("category = %s, want %s", q.Category, CategoryTechnical)
	}
	if !strings.Contains(q.Prompt, "backend engineering") {
		t.Errorf("prompt %q should mention the role", q.Prompt)
	}
	if q.ID == "" {
		t.Error("question id is empty")
	}
}

func TestQuestion_UnknownCategoryFallsBack(t *testing.T) {
	g := NewGenerator(1)

	q := g.Question("data", "made-up")
	if q.Category != CategoryBehavioral {
		t.Errorf("category = %s, want fallback %s", q.Category, CategoryBehavioral)
	}
}

func TestFeedback_Deterministic(t *testing.T) {
	answer := "I led the migration because our old queue dropped messages. We measured a 40% latency drop and I learned to stage rollouts."

	a := NewGenerator(42)
	b := NewGenerator(42)

	qa := a.Question("backend", CategoryBehavioral)
	qb := b.Question("backend", CategoryBehavioral)

	fa := a.Feedback(qa, answer)
	fb := b.Feedback(qb, answer)

	if fa.Score != fb.Score {
		t.Errorf("scores differ for same seed: %d vs %d", fa.Score, fb.Score)
	}
	if fa.Summary != fb.Summary {
		t.Errorf("summaries differ for same seed")
	}
}

func TestFeedback_RewardsSubstance(t *testing.T) {
	g := NewGenerator(7)
	q := g.Question("backend", CategoryBehavioral)

	long := strings.Repeat("We shipped the fix and measured the result because it mattered. ", 20)
	rich := g.Feedback(q, long)
	thin := g.Feedback(q, "It went fine.")

	if rich.Score <= thin.Score {
		t.Errorf("substantial answer scored %d, thin answer %d; want higher for substance", rich.Score, thin.Score)
	}
	if rich.Score > 100 {
		t.Errorf("score %d exceeds 100", rich.Score)
	}
}

func TestFeedback_IncludesGuidance(t *testing.T) {
	g := NewGenerator(3)
	q := g.Question("backend", CategoryTechnical)

	f := g.Feedback(q, "short answer")

	if len(f.Strengths) != 2 || len(f.Improve) != 2 {
		t.Errorf("feedback lists = (%d strengths, %d improvements), want 2 each", len(f.Strengths), len(f.Improve))
	}
	if f.QuestionID != q.ID {
		t.Errorf("feedback question id = %s, want %s", f.QuestionID, q.ID)
	}
	if f.Summary == "" {
		t.Error("summary is empty")
	}
}
