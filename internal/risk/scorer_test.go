package risk

import (
	"reflect"
	"strings"
	"testing"
)

func TestScoreEmptyText(t *testing.T) {
	got := Score("")

	if len(got.Findings) != 0 {
		t.Errorf("expected no findings for empty text, got %v", got.Findings)
	}
	if got.Level != SeverityLow {
		t.Errorf("expected Low severity for empty text, got %s", got.Level)
	}
}

func TestScoreAllClauses(t *testing.T) {
	text := "The vendor may terminate this agreement and must indemnify the client; disputes follow the jurisdiction of State X."

	got := Score(text)

	want := []string{
		"Unilateral termination clause",
		"Unlimited indemnity clause",
		"Foreign jurisdiction clause",
	}
	if !reflect.DeepEqual(got.Findings, want) {
		t.Errorf("Findings = %v, want %v", got.Findings, want)
	}
	if got.Level != SeverityHigh {
		t.Errorf("Level = %s, want High", got.Level)
	}
}

func TestScoreNoClauses(t *testing.T) {
	got := Score("This agreement governs services rendered.")

	if len(got.Findings) != 0 {
		t.Errorf("Findings = %v, want none", got.Findings)
	}
	if got.Level != SeverityLow {
		t.Errorf("Level = %s, want Low", got.Level)
	}
}

func TestScoreSingleClause(t *testing.T) {
	got := Score("Either party may terminate with 30 days notice.")

	want := []string{"Unilateral termination clause"}
	if !reflect.DeepEqual(got.Findings, want) {
		t.Errorf("Findings = %v, want %v", got.Findings, want)
	}
	if got.Level != SeverityMedium {
		t.Errorf("Level = %s, want Medium", got.Level)
	}
}

func TestScoreCaseInsensitive(t *testing.T) {
	upper := Score("TERMINATE this agreement")
	lower := Score("terminate this agreement")

	if !reflect.DeepEqual(upper, lower) {
		t.Errorf("case changed result: %v vs %v", upper, lower)
	}
}

func TestScoreTriggerFiresOnce(t *testing.T) {
	text := strings.Repeat("terminate ", 5)

	got := Score(text)

	if len(got.Findings) != 1 {
		t.Errorf("expected exactly one finding, got %v", got.Findings)
	}
	if got.Level != SeverityMedium {
		t.Errorf("Level = %s, want Medium", got.Level)
	}
}

func TestScoreChecklistOrder(t *testing.T) {
	// Input mentions jurisdiction before terminate; findings must follow
	// checklist order, not input position.
	text := "jurisdiction is addressed first, the right to terminate second"

	got := Score(text)

	want := []string{
		"Unilateral termination clause",
		"Foreign jurisdiction clause",
	}
	if !reflect.DeepEqual(got.Findings, want) {
		t.Errorf("Findings = %v, want %v", got.Findings, want)
	}
	if got.Level != SeverityHigh {
		t.Errorf("Level = %s, want High", got.Level)
	}
}

func TestScoreIndemnityVariants(t *testing.T) {
	for _, text := range []string{"shall indemnify the buyer", "an indemnity is granted"} {
		got := Score(text)
		want := []string{"Unlimited indemnity clause"}
		if !reflect.DeepEqual(got.Findings, want) {
			t.Errorf("Score(%q).Findings = %v, want %v", text, got.Findings, want)
		}
	}
}

func TestScoreDeterministic(t *testing.T) {
	text := "terminate and indemnity"

	first := Score(text)
	for i := 0; i < 10; i++ {
		if got := Score(text); !reflect.DeepEqual(got, first) {
			t.Fatalf("Score is not deterministic: %v vs %v", got, first)
		}
	}
}

func TestSeverityForCount(t *testing.T) {
	cases := []struct {
		count int
		want  Severity
	}{
		{0, SeverityLow},
		{1, SeverityMedium},
		{2, SeverityHigh},
		{3, SeverityHigh},
	}

	for _, c := range cases {
		if got := severityForCount(c.count); got != c.want {
			t.Errorf("severityForCount(%d) = %s, want %s", c.count, got, c.want)
		}
	}
}
