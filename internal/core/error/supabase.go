package errx

import "net/http"

// WrapSupabase maps data gateway errors to AppError with a bad-gateway status.
// PostgREST does not expose typed errors, so no finer mapping is attempted.
func WrapSupabase(err error) error {
	if err == nil {
		return nil
	}
	return New(err, http.StatusBadGateway, SupabaseErrorMessage)
}

// WrapModel maps LLM provider failures to AppError.
func WrapModel(err error) error {
	if err == nil {
		return nil
	}
	return New(err, http.StatusBadGateway, ModelErrorMessage)
}
