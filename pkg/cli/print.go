package cli

import (
	"io"

	"github.com/netlenium/netlenium-go/pkg/cli/internal/output"
)

func writeJSON(w io.Writer, data any) error {
	return output.JSON(w, data)
}
