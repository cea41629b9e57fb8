package models

import "strings"

// Profile holds the fixed set of contact fields that feed the
// profile-completeness calculation. It is fetched on demand from the remote
// API and is never persisted independently of its source fields.
type Profile struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	CompanyName string `json:"company_name"`
	City        string `json:"city"`
	State       string `json:"state"`
}

// profileFieldCount is the size of the fixed field set the completeness
// percentage is computed over.
const profileFieldCount = 5

// CompletionPercent returns the share of populated profile fields as a
// 0-100 percentage. A field counts as populated when it contains at least
// one non-whitespace character.
func (p Profile) CompletionPercent() int {
	filled := 0
	for _, v := range []string{p.Name, p.Phone, p.CompanyName, p.City, p.State} {
		if strings.TrimSpace(v) != "" {
			filled++
		}
	}
	return filled * 100 / profileFieldCount
}

// Complete reports whether every profile field is populated.
func (p Profile) Complete() bool {
	return p.CompletionPercent() == 100
}
