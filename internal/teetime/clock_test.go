package teetime

import "testing"

func TestParseClock(t *testing.T) {
	tests := []struct {
		text   string
		want   int
		wantOK bool
	}{
		{"07:30", 7*60 + 30, true},
		{"7:30", 7*60 + 30, true},
		{"14:00:00", 14 * 60, true},
		{"7:30 AM", 7*60 + 30, true},
		{"7:30 am", 7*60 + 30, true},
		{"2:05PM", 14*60 + 5, true},
		{"12:00 AM", 0, true},
		{"12:15 PM", 12*60 + 15, true},
		{"  10:00  ", 10 * 60, true},
		{"", 0, false},
		{"noon", 0, false},
		{"25:00", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ParseClock(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("ParseClock(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ParseClock(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "12:00 AM"},
		{6 * 60, "6:00 AM"},
		{7*60 + 5, "7:05 AM"},
		{12 * 60, "12:00 PM"},
		{13*60 + 48, "1:48 PM"},
		{23*60 + 59, "11:59 PM"},
		{24*60 + 30, "12:30 AM"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatClock(tt.minutes); got != tt.want {
				t.Errorf("FormatClock(%d) = %q, want %q", tt.minutes, got, tt.want)
			}
		})
	}
}

func TestFormatClockRoundTrip(t *testing.T) {
	for minutes := 0; minutes < 24*60; minutes += 7 {
		got, ok := ParseClock(FormatClock(minutes))
		if !ok || got != minutes {
			t.Fatalf("ParseClock(FormatClock(%d)) = %d, %v", minutes, got, ok)
		}
	}
}

func TestParseWindowEnd(t *testing.T) {
	tests := []struct {
		text   string
		want   int
		wantOK bool
	}{
		{"24:00", 24 * 60, true},
		{" 24:00 ", 24 * 60, true},
		{"23:59", 23*60 + 59, true},
		{"12:00 PM", 12 * 60, true},
		{"24:01", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ParseWindowEnd(tt.text)
			if ok != tt.wantOK || (ok && got != tt.want) {
				t.Errorf("ParseWindowEnd(%q) = %d, %v, want %d, %v", tt.text, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
