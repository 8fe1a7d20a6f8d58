package emailapi

// sendRequest тело запроса к /email/send
type sendRequest struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	AccessToken    string         `json:"accessToken,omitempty"`
	TemplateParams templateParams `json:"template_params"`
}

// templateParams фиксированный набор полей, доступных во всех шаблонах
type templateParams struct {
	ToName          string `json:"to_name"`
	ReservationDate string `json:"reservation_date"`
	ReservationTime string `json:"reservation_time"`
	UserEmail       string `json:"user_email"`
}
