package set_reservation_outcome

// SetOutcomeRequest HTTP request model
type SetOutcomeRequest struct {
	Outcome string `json:"outcome"` // "confirm" | "deny"
}
