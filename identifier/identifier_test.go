package identifier

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain name", input: "The Golden Fork", want: "the-golden-fork"},
		{name: "accents and punctuation", input: "Café Central!!", want: "cafe-central"},
		{name: "already normalized", input: "cafe-central", want: "cafe-central"},
		{name: "collapses whitespace", input: "  big   table \t 7 ", want: "big-table-7"},
		{name: "collapses hyphens", input: "patio---terrace", want: "patio-terrace"},
		{name: "trims hyphens", input: "-vip-", want: "vip"},
		{name: "mixed separators", input: "a - b -- c", want: "a-b-c"},
		{name: "drops symbols", input: "50% off!", want: "50-off"},
		{name: "only symbols", input: "!!!***", want: ""},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
			// Normalize must be idempotent
			if again := Normalize(got); again != got {
				t.Errorf("Normalize not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"table-1", true},
		{"vip", true},
		{"ab", false},
		{"", false},
		{"Table-1", false},
		{"table 1", false},
	}
	for _, tt := range tests {
		if got := Valid(tt.input); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewQRToken(t *testing.T) {
	token := NewQRToken()
	if len(token) != 32 {
		t.Fatalf("expected 32-char token, got %d chars", len(token))
	}
	for _, r := range token {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
			t.Fatalf("token %q contains non-hex character %q", token, r)
		}
	}
	if NewQRToken() == token {
		t.Fatal("two tokens came out identical")
	}
}

func TestRandomSuffix(t *testing.T) {
	s := RandomSuffix()
	if len(s) != 4 {
		t.Fatalf("expected 4-char suffix, got %q", s)
	}
}
