package model

// Settings holds the business profile shown on reports and exports.
// Currency is an ISO-4217-like code; the display symbol is derived, never stored.
type Settings struct {
	CompanyName string `json:"companyName"`
	Currency    string `json:"currency"`
}

// Credential is the single stored login. There is exactly one user.
type Credential struct {
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
}
