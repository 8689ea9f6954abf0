package company

import "hr-hub/internal/shared/request"

type ListCompaniesQuery struct {
	request.PageQuery
}

type CompanyResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CountryCode string `json:"country_code"`
	Timezone    string `json:"timezone"`
	Currency    string `json:"currency"`
	IsActive    bool   `json:"is_active"`
}

// UpdateCompanyRequest leaves absent fields unchanged.
type UpdateCompanyRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=150"`
	Timezone *string `json:"timezone" binding:"omitempty,timezone"`
	IsActive *bool   `json:"is_active"`
}
