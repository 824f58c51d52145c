// Command bloodlink is the operations CLI: serve, routes, seed, stats.
package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mahfuzanam/bloodlink/app/repositories"
	"github.com/mahfuzanam/bloodlink/app/services"
	"github.com/mahfuzanam/bloodlink/config"
	"github.com/mahfuzanam/bloodlink/database/seeders"
	"github.com/mahfuzanam/bloodlink/internal/server"
	"github.com/mahfuzanam/bloodlink/pkg/audit"
	"github.com/mahfuzanam/bloodlink/pkg/database"
	"github.com/mahfuzanam/bloodlink/pkg/storage"
)

func main() {
	root := &cobra.Command{
		Use:   "bloodlink",
		Short: "Blood donation coordination backend",
	}

	root.AddCommand(serveCmd(), routesCmd(), seedCmd(), statsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.Run()
		},
	}
}

// withStore connects the document store, runs fn, and disconnects.
func withStore(fn func(ctx context.Context) error) error {
	config.Load()
	if err := database.Connect(); err != nil {
		return fmt.Errorf("connect store: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	defer database.Disconnect(ctx) //nolint:errcheck

	return fn(ctx)
}

func routesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List registered routes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context) error {
				storage.Connect()

				trail := audit.New(database.AuditLog())
				defer trail.Close()

				r := server.BuildRouter(trail)
				infos := r.Routes()
				sort.Slice(infos, func(i, j int) bool { return infos[i].Path < infos[j].Path })

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "METHOD\tPATH\tNAME")
				for _, info := range infos {
					fmt.Fprintf(w, "%s\t%s\t%s\n", info.Method, info.Path, info.Name)
				}
				return w.Flush()
			})
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the baseline admin/volunteer/donor users",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context) error {
				if err := seeders.Run(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "seeded")
				return nil
			})
		},
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print a quick funding and cardinality summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context) error {
				svc := services.NewStatsService(
					repositories.NewUserRepository(),
					repositories.NewDonationRepository(),
					repositories.NewFundingRepository(),
					repositories.NewBlogRepository(),
				)

				stats, err := svc.Financial(ctx)
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintf(w, "total revenue\t%.2f\n", stats.TotalRevenue)
				fmt.Fprintf(w, "users\t%d\n", stats.Users)
				fmt.Fprintf(w, "donation requests\t%d\n", stats.DonationRequests)
				fmt.Fprintf(w, "blogs\t%d\n", stats.BlogCount)
				return w.Flush()
			})
		},
	}
}
