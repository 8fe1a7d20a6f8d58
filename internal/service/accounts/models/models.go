package models

// UpdateProfileRequest запрос на обновление профиля
type UpdateProfileRequest struct {
	AccountID string
	Name      string
	Phone     string
}

// ResolveAdminRequest решение по заявке на права администратора
type ResolveAdminRequest struct {
	CallerID  string
	AccountID string
	Accept    bool
}

// ProvisionRequest создание или перезапись аккаунта из CLI
type ProvisionRequest struct {
	ID        string
	Email     string
	Name      string
	Phone     string
	Admin     bool
	Protected bool
}
