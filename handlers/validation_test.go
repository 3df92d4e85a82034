package handlers

import "testing"

func TestSanitizeName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Jane Doe", "Jane Doe"},
		{"  Jane  ", "Jane"},
		{"<script>alert(1)</script>Jane", "scriptalert(1)/scriptJane"},
		{"<>", ""},
	}
	for _, tc := range cases {
		if got := sanitizeName(tc.in); got != tc.want {
			t.Errorf("sanitizeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPhonePattern(t *testing.T) {
	valid := []string{
		"+6281234567890",
		"6281234567890",
		"081234567890",
		"0812-3456-7890",
	}
	for _, p := range valid {
		if !phonePattern.MatchString(p) {
			t.Errorf("expected %q to be valid", p)
		}
	}

	invalid := []string{
		"",
		"12345",
		"+14155550100",
		"0812345",
		"08123456789012345678",
		"+62 812 3456 7890",
	}
	for _, p := range invalid {
		if phonePattern.MatchString(p) {
			t.Errorf("expected %q to be invalid", p)
		}
	}
}

func TestStandardizePhone(t *testing.T) {
	cases := []struct{ in, want string }{
		{"+6281234567890", "+6281234567890"},
		{"6281234567890", "+6281234567890"},
		{"081234567890", "+6281234567890"},
		{"0812-3456-7890", "+6281234567890"},
	}
	for _, tc := range cases {
		if got := standardizePhone(tc.in); got != tc.want {
			t.Errorf("standardizePhone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
