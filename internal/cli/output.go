package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/llmctx/gitctx/internal/ghoutput"
)

// emitPayload prints a compact payload to stdout and mirrors it to the
// GitHub Actions output file when one is configured.
func emitPayload(cmd *cobra.Command, key, payload string) error {
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), payload); err != nil {
		return err
	}
	return ghoutput.Write(map[string]string{key: payload})
}
