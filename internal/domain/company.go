package domain

import (
	"strings"
	"time"
)

// CompanyStatus enumerates company lifecycle states.
type CompanyStatus string

const (
	CompanyStatusActive    CompanyStatus = "ACTIVE"
	CompanyStatusSuspended CompanyStatus = "SUSPENDED"
)

// ParseCompanyStatus folds case to the canonical company status.
func ParseCompanyStatus(raw string) (CompanyStatus, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "ACTIVE":
		return CompanyStatusActive, true
	case "SUSPENDED":
		return CompanyStatusSuspended, true
	default:
		return "", false
	}
}

// Company groups users sharing an email domain.
type Company struct {
	ID          string
	Name        string
	EmailDomain string
	Status      CompanyStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EmailDomain extracts the normalized domain from an email address, e.g.
// "User@Example.com" yields "example.com".
func EmailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}

// CompanyNameFromDomain derives a default company name from an email domain,
// e.g. "example.com" yields "example".
func CompanyNameFromDomain(domain string) string {
	if dot := strings.Index(domain, "."); dot > 0 {
		return domain[:dot]
	}
	return domain
}
