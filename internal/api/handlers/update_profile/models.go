package update_profile

import "github.com/m04kA/bookit/internal/service/accounts/models"

// UpdateProfileRequest HTTP request model
type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateProfileRequest) ToServiceRequest(accountID string) *models.UpdateProfileRequest {
	return &models.UpdateProfileRequest{
		AccountID: accountID,
		Name:      r.Name,
		Phone:     r.Phone,
	}
}
