package cli

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/netlenium/netlenium-go/pkg/netlenium"
)

// FormatError returns a user-friendly message for err, adding suggestions
// for failures the user can usually fix themselves.
func FormatError(err error) string {
	var urlErr *url.Error
	switch {
	case errors.Is(err, netlenium.KindUnauthorized):
		return fmt.Sprintf(`Error: %s

Suggestions:
  • Pass the shared secret with --secret or NETLENIUM_SECRET
  • Store it in the secret file: netlenium config shows where it is read from`, err)
	case errors.As(err, &urlErr):
		return fmt.Sprintf(`Error: %s

Suggestions:
  • Check that the Netlenium server is running
  • Verify the endpoint with: netlenium config`, err)
	}
	return "Error: " + err.Error()
}
