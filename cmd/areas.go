package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/table-booker/internal/config"
	"github.com/example/table-booker/internal/restohost"
)

func newAreasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "areas",
		Short: "List the restaurant's seating areas",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			client := restohost.New(cfg.APIBaseURL, cfg.APIToken)
			areas, err := client.Areas(ctx)
			if err != nil {
				return err
			}
			for _, a := range areas {
				fmt.Fprintf(os.Stdout, "id=%s name=%q\n", a.ID, a.Name)
			}
			return nil
		},
	}
}
