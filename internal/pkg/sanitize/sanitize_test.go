package sanitize

import "testing"

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "  Jazz vocalist  ", "Jazz vocalist"},
		{"ampersand kept", "R&B producer", "R&B producer"},
		{"script removed", "hi<script>alert(1)</script>", "hi"},
		{"markup stripped", "<b>Bold</b> move", "Bold move"},
		{"apostrophe kept", "rock 'n' roll", "rock 'n' roll"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(tt.in); got != tt.want {
				t.Errorf("Text(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTags(t *testing.T) {
	if got := Tags(nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}

	got := Tags([]string{"Vocals", " ", "Vocals", "<i>Piano</i>"})
	if len(got) != 2 || got[0] != "Vocals" || got[1] != "Piano" {
		t.Fatalf("unexpected tags %v", got)
	}
}
