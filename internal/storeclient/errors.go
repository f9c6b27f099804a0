package storeclient

import (
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/internal/domain"
)

// apiError is the body the DealHunt API writes for failed requests.
type apiError struct {
	Error string `json:"error"`
}

// responseError consumes and closes the body of a non-2xx response and maps
// the status onto the domain sentinels the controller classifies.
func responseError(resp *http.Response) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("status %d (failed to read body: %w)", resp.StatusCode, err)
	}

	msg := string(body)
	var parsed apiError
	if json.Unmarshal(body, &parsed) == nil && parsed.Error != "" {
		msg = parsed.Error
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", domain.ErrUnauthorized, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, msg)
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, msg)
	default:
		return fmt.Errorf("dealhunt api returned status %d: %s", resp.StatusCode, msg)
	}
}
