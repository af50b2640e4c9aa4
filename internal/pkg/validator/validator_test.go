package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2025-02-28"); !ok {
		t.Error("IsValidDate(2025-02-28) = false, want true")
	}
	invalid := []string{"2025-13-01", "2025-02-30", "28-02-2025", "2025/02/28", ""}
	for _, d := range invalid {
		if _, ok := IsValidDate(d); ok {
			t.Errorf("IsValidDate(%q) = true, want false", d)
		}
	}
}

func TestIsValidMonth(t *testing.T) {
	if _, ok := IsValidMonth("2025-02"); !ok {
		t.Error("IsValidMonth(2025-02) = false, want true")
	}
	invalid := []string{"2025-13", "2025", "02-2025", "2025-02-01", ""}
	for _, m := range invalid {
		if _, ok := IsValidMonth(m); ok {
			t.Errorf("IsValidMonth(%q) = true, want false", m)
		}
	}
}

func TestIsValidClockTime(t *testing.T) {
	valid := []string{"09:30", "23:59", "09:30:15", "00:00"}
	invalid := []string{"24:00", "9:75", "morning", ""}
	for _, c := range valid {
		if _, ok := IsValidClockTime(c); !ok {
			t.Errorf("IsValidClockTime(%q) = false, want true", c)
		}
	}
	for _, c := range invalid {
		if _, ok := IsValidClockTime(c); ok {
			t.Errorf("IsValidClockTime(%q) = true, want false", c)
		}
	}
}

func TestIsValidDateTime(t *testing.T) {
	valid := []string{"2024-01-15T10:30:00Z", "2024-01-15T10:30:00+07:00"}
	invalid := []string{"2024-01-15 10:30:00", "2024-01-15", ""}
	for _, dt := range valid {
		if _, ok := IsValidDateTime(dt); !ok {
			t.Errorf("IsValidDateTime(%q) = false, want true", dt)
		}
	}
	for _, dt := range invalid {
		if _, ok := IsValidDateTime(dt); ok {
			t.Errorf("IsValidDateTime(%q) = true, want false", dt)
		}
	}
}

func TestIsValidTimezone(t *testing.T) {
	valid := []string{"UTC", "Asia/Jakarta", "America/New_York"}
	invalid := []string{"", "Mars/Olympus", "GMT+25"}
	for _, tz := range valid {
		if !IsValidTimezone(tz) {
			t.Errorf("IsValidTimezone(%q) = false, want true", tz)
		}
	}
	for _, tz := range invalid {
		if IsValidTimezone(tz) {
			t.Errorf("IsValidTimezone(%q) = true, want false", tz)
		}
	}
}
