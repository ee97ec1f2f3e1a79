package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"emailcrawler/internal/app/export"
	"emailcrawler/internal/usecase"

	"github.com/spf13/cobra"
)

func newExtractCmd() *cobra.Command {
	var (
		depth  int
		domain string
		render bool
		format string
	)
	cmd := &cobra.Command{
		Use:   "extract <url>",
		Short: "Crawl once and print the emails found",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			defer logger.Sync()
			cfg := loadConfig(logger)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			req := usecase.SeedRequest{URL: args[0], Depth: depth, DomainFilter: domain, Mode: usecase.Static}
			if render {
				req.Mode = usecase.Rendered
			}
			res := newCrawler(cfg, logger).Crawl(ctx, req)
			if !res.OK() {
				return res.Err
			}
			f, err := export.Render(format, res.Emails.Slice())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if _, err := out.Write(f.Body); err != nil {
				return err
			}
			if len(f.Body) > 0 && f.Body[len(f.Body)-1] != '\n' {
				_, err = out.Write([]byte("\n"))
			}
			return err
		},
	}
	cmd.Flags().IntVar(&depth, "depth", 0, "link rounds to follow (0 uses the config default)")
	cmd.Flags().StringVar(&domain, "domain", "", "keep only emails ending with this suffix")
	cmd.Flags().BoolVar(&render, "render", false, "load the page in headless Chrome")
	cmd.Flags().StringVar(&format, "format", export.FormatTXT, "output format: csv, txt or excel")
	return cmd
}
