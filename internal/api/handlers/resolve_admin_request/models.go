package resolve_admin_request

// ResolveRequest HTTP request model
type ResolveRequest struct {
	Accept *bool `json:"accept"`
}
