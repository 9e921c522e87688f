package cli

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the server's HTTP health endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			httpClient := &http.Client{Timeout: 10 * time.Second}

			resp, err := httpClient.Get(cfg.HealthURL + "/healthz")
			if err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}
			defer func() { _ = resp.Body.Close() }()

			body, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("unhealthy: HTTP %d: %s", resp.StatusCode, string(body))
			}

			NewOutput(cfg.Output).PrintMessage(string(body))
			return nil
		},
	}
}
