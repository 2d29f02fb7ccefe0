package main

import "testing"

func TestValidatePhoneNumber(t *testing.T) {
	cases := []struct {
		phone string
		valid bool
	}{
		{"5551234567", true},
		{"0000000000", true},
		{"555123456", false},
		{"55512345678", false},
		{"555123456a", false},
		{"555 123456", false},
		{"+551234567", false},
		{"", false},
	}

	for _, tt := range cases {
		if got := ValidatePhoneNumber(tt.phone); got != tt.valid {
			t.Fatalf("ValidatePhoneNumber(%q)=%v, want %v", tt.phone, got, tt.valid)
		}
	}
}

func TestValidateName(t *testing.T) {
	cases := []struct {
		name  string
		valid bool
	}{
		{"John", true},
		{"Jo", true},
		{"John Doe", true},
		{"Anna Maria Jones", true},
		{"john", false},
		{"J0hn", false},
		{"J", false},
		{"John_Doe", false},
		{"John doe", false},
		{" John", false},
		{"John ", false},
		{"", false},
		{"Abcdefghijklmnopqrstuvwxyzabcd", true},  // 30 chars
		{"Abcdefghijklmnopqrstuvwxyzabcde", false}, // 31 chars
	}

	for _, tt := range cases {
		if got := ValidateName(tt.name); got != tt.valid {
			t.Fatalf("ValidateName(%q)=%v, want %v", tt.name, got, tt.valid)
		}
	}
}
