package routes

import "testing"

func TestOptionalClock(t *testing.T) {
	for _, input := range []string{"", "   "} {
		got, err := optionalClock(input)
		if err != nil {
			t.Fatalf("optionalClock(%q): %v", input, err)
		}
		if got != nil {
			t.Errorf("optionalClock(%q) = %q, want nil for an open slot", input, *got)
		}
	}

	got, err := optionalClock(" 20:00 ")
	if err != nil {
		t.Fatalf("optionalClock(\" 20:00 \"): %v", err)
	}
	if got == nil || *got != "20:00" {
		t.Errorf("optionalClock(\" 20:00 \") = %v, want 20:00", got)
	}

	for _, input := range []string{"24:00", "8pm", "20", "20:61"} {
		if _, err := optionalClock(input); err == nil {
			t.Errorf("optionalClock(%q): expected error", input)
		}
	}
}
