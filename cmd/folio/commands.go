package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gauthierbraillon/folio/internal/chat"
	"github.com/gauthierbraillon/folio/internal/config"
	"github.com/gauthierbraillon/folio/internal/content"
	"github.com/gauthierbraillon/folio/internal/display"
	"github.com/gauthierbraillon/folio/internal/query"
	"github.com/gauthierbraillon/folio/internal/server"
	"github.com/gauthierbraillon/folio/pkg/browser"
)

const collectTimeout = 30 * time.Second

func (a *app) formatter() *display.TerminalFormatter {
	return display.NewTerminalFormatter(display.WithSiteURL(a.cfg.SiteURL))
}

// newDiscoverCmd creates the discover subcommand.
func newDiscoverCmd(a *app) *cobra.Command {
	var (
		search   string
		category string
		origins  []string
		sortKey  string
		page     int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Search, filter and page through all content",
		Long:  "List posts, articles, stories and repositories, newest first unless --sort says otherwise.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := query.NewDescriptor()
			d.Search = search
			d.Page = page
			d.PageSize = a.cfg.PageSize
			if pageSize > 0 {
				d.PageSize = pageSize
			}

			var err error
			if d.Category, err = query.ParseCategoryFilter(category); err != nil {
				return err
			}
			if d.Sort, err = query.ParseSortKey(sortKey); err != nil {
				return err
			}
			for _, name := range origins {
				o, err := content.ParseOrigin(name)
				if err != nil {
					return err
				}
				d.Origins = append(d.Origins, o)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), collectTimeout)
			defer cancel()
			agg, err := a.collect(ctx)
			if err != nil {
				return err
			}

			f := a.formatter()
			fmt.Fprint(cmd.OutOrStdout(), f.FormatNotice(agg.Notice()))
			fmt.Fprint(cmd.OutOrStdout(), f.FormatPage(query.Evaluate(agg.Items, d)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "q", "", "Match titles, summaries and tags")
	cmd.Flags().StringVarP(&category, "category", "c", query.CategoryAll, "Filter by category (Performance, CSS, Programming, Frontend News, Tools, General)")
	cmd.Flags().StringSliceVarP(&origins, "origin", "o", nil, "Filter by origin (local, devto, hackernews, github, rss)")
	cmd.Flags().StringVarP(&sortKey, "sort", "s", string(query.SortDateDesc), "Sort order (date-desc, date-asc, title-asc, title-desc, read-asc, read-desc)")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page number")
	cmd.Flags().IntVarP(&pageSize, "page-size", "n", 0, "Items per page (default from config)")

	return cmd
}

// newFeaturedCmd creates the featured subcommand.
func newFeaturedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "featured",
		Short: "Show featured content",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), collectTimeout)
			defer cancel()
			agg, err := a.collect(ctx)
			if err != nil {
				return err
			}

			f := a.formatter()
			fmt.Fprint(cmd.OutOrStdout(), f.FormatNotice(agg.Notice()))
			fmt.Fprint(cmd.OutOrStdout(), f.FormatFeatured(query.Featured(agg.Items, a.cfg.FeaturedLimit)))
			return nil
		},
	}
}

// newAskCmd creates the ask subcommand. Without arguments it reads one
// question per line from stdin.
func newAskCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask the project explorer a question",
		Long:  "Ask about projects, the stack or the blog. With no arguments, questions are read line by line from stdin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			responder, err := chat.Default()
			if err != nil {
				return err
			}
			conv := chat.NewConversation(responder)

			if len(args) > 0 {
				conv.Ask(strings.Join(args, " "))
			} else {
				scanner := bufio.NewScanner(cmd.InOrStdin())
				for scanner.Scan() {
					if line := strings.TrimSpace(scanner.Text()); line != "" {
						conv.Ask(line)
					}
				}
				if err := scanner.Err(); err != nil {
					return fmt.Errorf("reading questions: %w", err)
				}
			}

			fmt.Fprint(cmd.OutOrStdout(), a.formatter().FormatTranscript(conv.Transcript()))
			return nil
		},
	}
}

// newOpenCmd creates the open subcommand.
func newOpenCmd(a *app) *cobra.Command {
	var printOnly bool

	cmd := &cobra.Command{
		Use:   "open <id>",
		Short: "Open an item in the browser",
		Long:  "Open an item by the id shown in 'folio discover', e.g. local-css-container-queries.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), collectTimeout)
			defer cancel()
			agg, err := a.collect(ctx)
			if err != nil {
				return err
			}

			for _, item := range agg.Items {
				if item.ID != args[0] {
					continue
				}
				link := item.LinkFrom(a.cfg.SiteURL)
				if printOnly {
					fmt.Fprintln(cmd.OutOrStdout(), link)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Opening %s\n", link)
				if err := browser.Open(link); err != nil {
					return fmt.Errorf("could not open browser, visit %s: %w", link, err)
				}
				return nil
			}
			return fmt.Errorf("no item with id %q", args[0])
		},
	}

	cmd.Flags().BoolVar(&printOnly, "print", false, "Print the link instead of opening it")

	return cmd
}

// newServeCmd creates the serve subcommand.
func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the content API over HTTP",
		Long:  "Serve /api/content, /api/featured, /api/categories, /api/chat and /api/refresh as JSON.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.ListenAddr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			agg, err := a.newAggregator()
			if err != nil {
				return err
			}
			responder, err := chat.Default()
			if err != nil {
				return err
			}

			session := query.NewSession(nil, a.cfg.FeaturedLimit)
			opts := []server.Option{server.WithLogger(a.logger), server.WithPageSize(a.cfg.PageSize)}
			if !a.offline {
				opts = append(opts, server.WithCollector(agg))
			}
			srv := server.New(session, responder, opts...)

			collectCtx, cancel := context.WithTimeout(ctx, collectTimeout)
			srv.SetAggregation(agg.Collect(collectCtx))
			cancel()

			fmt.Fprintf(cmd.OutOrStdout(), "Serving on http://%s\n", addr)
			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")

	return cmd
}

// newConfigCmd creates the config subcommand.
func newConfigCmd(a *app) *cobra.Command {
	var initFile bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long:  "Print the config file in use and the effective settings. --init writes the defaults to the config path.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.configPath
			if path == "" {
				path = os.Getenv(config.EnvConfig)
			}
			if path == "" {
				path = config.DefaultConfigPath()
			}

			if initFile {
				if err := config.WriteDefaults(path); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote default config to %s\n", path)
				return nil
			}

			source := path
			if a.cfg.Path == "" {
				source = path + " (not found, using defaults)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config file: %s\n\n", source)

			data, err := a.cfg.Marshal()
			if err != nil {
				return fmt.Errorf("rendering config: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().BoolVar(&initFile, "init", false, "Write the default config file")

	return cmd
}
