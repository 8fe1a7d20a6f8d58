package add_unavailable_time

// AddUnavailableTimeRequest HTTP request model
type AddUnavailableTimeRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// AddUnavailableTimeResponse HTTP response model; added=false, если слот уже был в списке
type AddUnavailableTimeResponse struct {
	Date  string `json:"date"`
	Time  string `json:"time"`
	Added bool   `json:"added"`
}
