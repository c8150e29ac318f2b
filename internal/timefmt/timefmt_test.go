package timefmt

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0:00"},
		{9, "0:09"},
		{95, "1:35"},
		{600, "10:00"},
		{-5, "-0:05"},
	}
	for _, tt := range tests {
		if got := Format(tt.in); got != tt.want {
			t.Errorf("Format(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int
		wantErr error
	}{
		{name: "seconds", in: "95", want: 95},
		{name: "minutes and seconds", in: "1:35", want: 95},
		{name: "padded", in: " 2:00 ", want: 120},
		{name: "zero", in: "0:00", want: 0},
		{name: "empty", in: "", wantErr: ErrInvalidTimeFormat},
		{name: "negative", in: "-3", wantErr: ErrNegativeTime},
		{name: "single digit seconds", in: "1:5", wantErr: ErrInvalidTimeFormat},
		{name: "seconds overflow", in: "1:60", wantErr: ErrInvalidTimeFormat},
		{name: "missing minutes", in: ":30", wantErr: ErrInvalidTimeFormat},
		{name: "text", in: "soon", wantErr: ErrInvalidTimeFormat},
		{name: "signed seconds", in: "1:-5", wantErr: ErrInvalidTimeFormat},
		{name: "plus seconds", in: "1:+5", wantErr: ErrInvalidTimeFormat},
		{name: "plus minutes", in: "+1:05", wantErr: ErrInvalidTimeFormat},
		{name: "plus bare seconds", in: "+5", wantErr: ErrInvalidTimeFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got error %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseRange(t *testing.T) {
	r, err := ParseRange("0:30", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Start != 30 || r.End != 30 {
		t.Errorf("got %+v, want 30-30", r)
	}

	r, err = ParseRange("30", "1:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Start != 30 || r.End != 60 {
		t.Errorf("got %+v, want 30-60", r)
	}

	if _, err := ParseRange("1:00", "0:30"); !errors.Is(err, ErrEndBeforeStart) {
		t.Errorf("got %v, want ErrEndBeforeStart", err)
	}
	if _, err := ParseRange("x", ""); !errors.Is(err, ErrInvalidTimeFormat) {
		t.Errorf("got %v, want ErrInvalidTimeFormat", err)
	}
}

func TestFormatSpan(t *testing.T) {
	if got := FormatSpan(30, 30); got != "0:30" {
		t.Errorf("got %q", got)
	}
	if got := FormatSpan(0, 90); got != "0:00-1:30" {
		t.Errorf("got %q", got)
	}
}
