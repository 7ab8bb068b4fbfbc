package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"rentai/catalog"
	"rentai/config"
	"rentai/services"
	"rentai/storage"
	"rentai/tools"
	"rentai/tui"
	"rentai/web"
)

func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

func ServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the website and JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				a.cfg.HTTPAddr = addr
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			srv, err := web.NewServer(a.cfg, store, services.NewUnavailableSearch(a.logger), a.logger)
			if err != nil {
				return err
			}

			ctx, stop := signalContext(cmd)
			defer stop()

			a.logger.Info("=== RentAI starting (store: %s) ===", a.cfg.StoreDriver)
			return srv.Run(ctx)
		},
	}
	cmd.Flags().String("addr", "", "Listen address (overrides HTTP_ADDR)")
	return cmd
}

func SeedCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the built-in catalog into the configured store",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.StoreDriver == config.StoreMemory {
				return fmt.Errorf("seed needs a persistent store; set STORE_DRIVER to %q or %q", config.StoreSQLite, config.StorePostgres)
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			seed := storage.SeedCatalog()
			if err := store.ReplaceCatalog(cmd.Context(), seed); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			a.logger.Info("Seeded %d listings, %d neighborhoods, %d property types",
				len(seed.Listings), len(seed.Neighborhoods), len(seed.PropertyTypes))
			return nil
		},
	}
	return cmd
}

func ImportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Replace the listings with rows from a CSV file",
		Long:  "Reads listings from a CSV file (default CSV_PATH), cleans them and replaces the listings in the configured store. Neighborhoods and property types are kept.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.CSVPath
			if len(args) == 1 {
				path = args[0]
			}
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			raw, err := storage.ReadRawListingsFile(path)
			if err != nil {
				return err
			}
			listings := services.NewCleaner(a.logger).Clean(raw)
			a.logger.Info("Read %d rows from %s, %d usable after cleaning", len(raw), path, len(listings))
			if len(listings) == 0 {
				return fmt.Errorf("import: no usable listings in %s", path)
			}

			if dryRun {
				insights := services.NewInsightService(a.logger)
				insights.Print(cmd.OutOrStdout(), insights.Generate(listings))
				return nil
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := cmd.Context()
			neighborhoods, err := store.Neighborhoods(ctx)
			if err != nil {
				return err
			}
			types, err := store.PropertyTypes(ctx)
			if err != nil {
				return err
			}
			if err := store.ReplaceCatalog(ctx, storage.Catalog{
				Listings:      listings,
				Neighborhoods: neighborhoods,
				PropertyTypes: types,
			}); err != nil {
				return fmt.Errorf("import: %w", err)
			}
			if a.cfg.StoreDriver == config.StoreMemory {
				a.logger.Warn("Imported into the in-memory store; the change is lost when this command exits")
			}
			a.logger.Info("Imported %d listings", len(listings))
			return nil
		},
	}
	cmd.Flags().Bool("dry-run", false, "Clean and summarise the file without writing to the store")
	return cmd
}

func ExportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write the listings to a CSV file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.CSVPath
			if len(args) == 1 {
				path = args[0]
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			filter, _ := cmd.Flags().GetString("filter")
			listings, err := store.Listings(cmd.Context())
			if err != nil {
				return err
			}
			listings = services.FilterListings(filter, listings)

			w, err := storage.NewCSVWriter(path)
			if err != nil {
				return err
			}
			if err := w.Write(listings); err != nil {
				_ = w.Close()
				return err
			}
			if err := w.Close(); err != nil {
				return err
			}
			a.logger.Info("Exported %d listings to %s", len(listings), path)
			return nil
		},
	}
	cmd.Flags().String("filter", services.FilterAll, "Listing filter (all, premium or a type)")
	return cmd
}

func InsightsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Print statistics about the listing catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			listings, err := store.Listings(cmd.Context())
			if err != nil {
				return err
			}

			insights := services.NewInsightService(a.logger)
			report := insights.Generate(listings)

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			insights.Print(cmd.OutOrStdout(), report)
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Print the report as JSON")
	return cmd
}

func SearchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Open the terminal search and explore client",
		RunE: func(cmd *cobra.Command, args []string) error {
			backend := services.NewUnavailableSearch(a.logger)

			if query, _ := cmd.Flags().GetString("query"); query != "" {
				tabName, _ := cmd.Flags().GetString("tab")
				req := services.SearchRequest{Query: query, Tab: catalog.ParseTab(tabName)}
				results, err := backend.Search(cmd.Context(), req)
				if err != nil {
					return err
				}
				for _, l := range results {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", l.ID, l.Title, services.FormatNaira(l.Price))
				}
				return nil
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			ctx, stop := signalContext(cmd)
			defer stop()

			cycler := services.NewCycler(a.cfg.SuggestionInterval, catalog.Suggestions)
			return tui.Run(ctx, store, backend, cycler, a.logger)
		},
	}
	cmd.Flags().String("query", "", "Run a single search instead of opening the client")
	cmd.Flags().String("tab", string(catalog.ParseTab("")), "Stay tab for --query (rental or shortlet)")
	return cmd
}

func CrawlCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Check a running site for broken links",
		RunE: func(cmd *cobra.Command, args []string) error {
			if base, _ := cmd.Flags().GetString("base-url"); base != "" {
				a.cfg.BaseURL = base
			}
			crawler, err := tools.NewCrawler(a.cfg, a.logger)
			if err != nil {
				return err
			}

			ctx, stop := signalContext(cmd)
			defer stop()

			report, err := crawler.Crawl(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Visited %d pages\n", len(report.Visited))
			for _, b := range report.Broken {
				fmt.Fprintf(out, "BROKEN %d %s (linked from %s)\n", b.Status, b.URL, b.Referer)
			}

			if strict, _ := cmd.Flags().GetBool("strict"); strict && len(report.Broken) > 0 {
				return fmt.Errorf("crawl: %d broken links", len(report.Broken))
			}
			return nil
		},
	}
	cmd.Flags().String("base-url", "", "Site to crawl (overrides BASE_URL)")
	cmd.Flags().Bool("strict", false, "Exit with an error when broken links are found")
	return cmd
}

func SnapshotCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Capture screenshots of the site pages with headless Chrome",
		RunE: func(cmd *cobra.Command, args []string) error {
			if base, _ := cmd.Flags().GetString("base-url"); base != "" {
				a.cfg.BaseURL = base
			}
			if out, _ := cmd.Flags().GetString("out"); out != "" {
				a.cfg.SnapshotDir = out
			}
			routes, _ := cmd.Flags().GetStringSlice("routes")

			ctx, stop := signalContext(cmd)
			defer stop()

			shots, err := tools.NewSnapshotter(a.cfg, a.logger).Capture(ctx, routes)
			for _, s := range shots {
				if s.Err == nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%-28s %s  %q\n", s.Route, s.File, strings.TrimSpace(s.Title))
				}
			}
			return err
		},
	}
	cmd.Flags().String("base-url", "", "Site to capture (overrides BASE_URL)")
	cmd.Flags().String("out", "", "Output directory (overrides SNAPSHOT_DIR)")
	cmd.Flags().StringSlice("routes", tools.SnapshotRoutes(), "Routes to capture")
	return cmd
}
