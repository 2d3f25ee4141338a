package beneficiary

import "fmt"

// CreateBeneficiaryRequest represents the administrative add payload
type CreateBeneficiaryRequest struct {
	NeedyID  string `json:"id"`
	Name     string `json:"name" validate:"required"`
	Area     string `json:"area" validate:"required"`
	Category string `json:"category" validate:"required"`
	Phone    string `json:"phone"`
}

func (r *CreateBeneficiaryRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if r.Area == "" {
		return fmt.Errorf("area is required")
	}
	if r.Category == "" {
		return fmt.Errorf("category is required")
	}
	return nil
}
