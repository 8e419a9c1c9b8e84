package errx

import "net/http"

// WrapGeneration wraps a text-generation dependency failure. Callers treat
// these as recoverable and route the turn to the fallback path.
func WrapGeneration(err error) error {
	if err == nil {
		return nil
	}
	return New(err, http.StatusBadGateway, GenerationErrorMessage)
}
