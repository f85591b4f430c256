package domain

import "testing"

func TestEmailDomain(t *testing.T) {
	cases := []struct {
		email string
		want  string
	}{
		{"user@example.com", "example.com"},
		{"User@Example.COM", "example.com"},
		{"first.last@sub.example.co.uk", "sub.example.co.uk"},
		{"no-at-sign", ""},
		{"trailing@", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := EmailDomain(tc.email); got != tc.want {
			t.Errorf("EmailDomain(%q) = %q, want %q", tc.email, got, tc.want)
		}
	}
}

func TestParseCompanyStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want CompanyStatus
		ok   bool
	}{
		{"active", CompanyStatusActive, true},
		{"Active", CompanyStatusActive, true},
		{"ACTIVE", CompanyStatusActive, true},
		{" suspended ", CompanyStatusSuspended, true},
		{"disabled", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := ParseCompanyStatus(tc.raw)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseCompanyStatus(%q) = (%q, %v), want (%q, %v)", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestCompanyNameFromDomain(t *testing.T) {
	cases := []struct {
		domain string
		want   string
	}{
		{"example.com", "example"},
		{"sub.example.com", "sub"},
		{"localhost", "localhost"},
	}
	for _, tc := range cases {
		if got := CompanyNameFromDomain(tc.domain); got != tc.want {
			t.Errorf("CompanyNameFromDomain(%q) = %q, want %q", tc.domain, got, tc.want)
		}
	}
}
