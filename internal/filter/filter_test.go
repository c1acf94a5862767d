package filter

import (
	"strings"
	"testing"
)

const applicationsJSON = `[
	{"id":"a1","company":"Acme","status":"interview"},
	{"id":"a2","company":"Globex","status":"submitted"},
	{"id":"a3","company":"Initech","status":"interview"}
]`

func TestApply_FilterNarrowsResults(t *testing.T) {
	out, err := Apply(applicationsJSON, "[?status=='interview']", "")
	if err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}

	if !strings.Contains(out, "Acme") || !strings.Contains(out, "Initech") {
		t.Errorf("filtered output missing interview entries: %s", out)
	}
	if strings.Contains(out, "Globex") {
		t.Errorf("filtered output should not contain submitted entry: %s", out)
	}
}

func TestApply_QuerySelectsFields(t *testing.T) {
	out, err := Apply(applicationsJSON, "[?status=='interview']", "[].company")
	if err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}

	if !strings.Contains(out, "Acme") || strings.Contains(out, "a1") {
		t.Errorf("query output should contain only company names: %s", out)
	}
}

func TestApply_EmptyExpressionsPassThrough(t *testing.T) {
	out, err := Apply(applicationsJSON, "", "")
	if err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}
	if out != applicationsJSON {
		t.Errorf("Apply with no expressions modified the body")
	}
}

func TestApply_InvalidInputs(t *testing.T) {
	if _, err := Apply("{not json", "[?x]", ""); err == nil {
		t.Error("Apply() with invalid JSON succeeded, want error")
	}
	if _, err := Apply(applicationsJSON, "[?status=='", ""); err == nil {
		t.Error("Apply() with invalid expression succeeded, want error")
	}
}
