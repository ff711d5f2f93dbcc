package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type UpdateSettingsRequest struct {
	CompanyName string `json:"companyName" validate:"max=120"`
	Currency    string `json:"currency"    validate:"required,len=3,alpha"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1"`
	Password string `json:"password" validate:"required,min=1"`
}

type ExportRequest struct {
	Range  string `json:"range"  validate:"required,oneof=week month all"`
	Format string `json:"format" validate:"required,oneof=csv pdf"`
}
