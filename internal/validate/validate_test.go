package validate

import (
	"testing"
	"time"
)

func TestDNI(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"12345678A", true},
		{"00000000Z", true},
		{"12345678a", false}, // letra en minúscula: se espera FormatDNI antes
		{"1234567A", false},
		{"123456789", false},
		{"12345678AA", false},
		{"", false},
	}
	for _, c := range cases {
		if got := DNI(c.in); got != c.want {
			t.Errorf("DNI(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestFormatDNI(t *testing.T) {
	if got := FormatDNI("12345678 a"); got != "12345678A" {
		t.Fatalf("FormatDNI = %q", got)
	}
	if !DNI(FormatDNI(" 87654321z ")) {
		t.Fatal("formatted DNI should validate")
	}
}

func TestPhone(t *testing.T) {
	if !Phone(FormatPhone("600-123-456")) {
		t.Fatal("expected formatted phone to validate")
	}
	if Phone("60012345") {
		t.Fatal("8 digits should not validate")
	}
	if Phone("6001234567") {
		t.Fatal("10 digits should not validate")
	}
}

func TestEmail(t *testing.T) {
	if !Email("ana@vet.com") {
		t.Fatal("expected valid email")
	}
	for _, bad := range []string{"", "ana", "ana@", "@vet.com", "ana@vet", "a na@vet.com"} {
		if Email(bad) {
			t.Errorf("Email(%q) should be false", bad)
		}
	}
}

func TestCanonicalHour(t *testing.T) {
	got, err := CanonicalHour("9:30")
	if err != nil {
		t.Fatalf("CanonicalHour error: %v", err)
	}
	if got != "09:30" {
		t.Fatalf("CanonicalHour = %q, want 09:30", got)
	}

	if _, err := CanonicalHour("25:00"); err == nil {
		t.Fatal("expected error for 25:00")
	}
	if _, err := CanonicalHour("10:65"); err == nil {
		t.Fatal("expected error for 10:65")
	}
	if _, err := CanonicalHour("mediodía"); err == nil {
		t.Fatal("expected error for non-time input")
	}
}

func TestBusinessHour(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"09:00", true}, // límite inferior inclusive
		{"17:00", true}, // límite superior inclusive
		{"12:30", true},
		{"08:59", false},
		{"17:01", false},
		{"00:00", false},
		{"23:59", false},
	}
	for _, c := range cases {
		if got := BusinessHour(c.in); got != c.want {
			t.Errorf("BusinessHour(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestFutureOrNow(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 30, 45, 0, time.Local)

	if !FutureOrNow(now, "10:30", now) {
		t.Fatal("same minute should count as now")
	}
	if !FutureOrNow(now, "10:31", now) {
		t.Fatal("next minute is future")
	}
	if FutureOrNow(now, "10:29", now) {
		t.Fatal("previous minute is past")
	}
	if !FutureOrNow(now.AddDate(0, 0, 1), "09:00", now) {
		t.Fatal("tomorrow is future")
	}
	if FutureOrNow(now.AddDate(0, 0, -1), "16:00", now) {
		t.Fatal("yesterday is past")
	}
}

func TestAgeAndWeight(t *testing.T) {
	if !Age(0) || !Age(50) || Age(-1) || Age(51) {
		t.Fatal("Age range should be [0,50]")
	}
	if !Weight(0.1) || Weight(0) || Weight(-2) {
		t.Fatal("Weight must be > 0")
	}
}

func TestFormatName(t *testing.T) {
	if got := FormatName("juan pérez"); got != "Juan Pérez" {
		t.Fatalf("FormatName = %q", got)
	}
	if got := FormatName("  ana  "); got != "Ana" {
		t.Fatalf("FormatName = %q", got)
	}
	if got := FormatName(""); got != "" {
		t.Fatalf("FormatName empty = %q", got)
	}
}
