package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zedfetch/zedfetch/internal/asset"
	"github.com/zedfetch/zedfetch/internal/binary"
	"github.com/zedfetch/zedfetch/internal/fault"
	"github.com/zedfetch/zedfetch/internal/logging"
	"github.com/zedfetch/zedfetch/internal/notes"
	"github.com/zedfetch/zedfetch/internal/pause"
	"github.com/zedfetch/zedfetch/internal/platform"
	"github.com/zedfetch/zedfetch/internal/release"
	"github.com/zedfetch/zedfetch/internal/service"
)

// options holds everything a run reads from its environment
type options struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// apiBaseURL overrides the GitHub API endpoint (tests only)
	apiBaseURL string

	verbose bool
	noPause bool
}

func newRootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "zedfetch [asset]",
		Short:         "Download the latest Zed for Windows build",
		Version:       Version,
		Args:          maxOneAsset,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The identifier is checked before anything touches the network.
			var sel asset.Selector = asset.First{}
			if len(args) == 1 {
				kind, err := asset.ParseKind(args[0])
				if err != nil {
					return err
				}
				sel = asset.ByKind{Kind: kind}
			}
			return run(cmd.Context(), opts, sel)
		},
	}

	cmd.SetIn(opts.stdin)
	cmd.SetOut(opts.stdout)
	cmd.SetErr(opts.stderr)
	cmd.SetVersionTemplate("zedfetch {{.Version}}\n")
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		fmt.Fprint(c.OutOrStdout(), helpText(c))
	})

	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "print debug logs to stderr")
	cmd.Flags().BoolVar(&opts.noPause, "no-pause", false, "exit without waiting for a key press")

	return cmd
}

func maxOneAsset(_ *cobra.Command, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("expected at most one asset, got %d: %w", len(args), fault.ErrInvalidArgument)
	}
	return nil
}

func helpText(c *cobra.Command) string {
	var b strings.Builder
	b.WriteString("Usage: zedfetch [asset]\n\n")
	fmt.Fprintf(&b, "Possible values: %s\n\n", asset.KindNames())
	b.WriteString("Flags:\n")
	b.WriteString(c.Flags().FlagUsages())
	return b.String()
}

func run(ctx context.Context, opts *options, sel asset.Selector) error {
	log := logging.New(opts.stderr, opts.verbose)

	info, err := platform.NewDetector().Detect(ctx)
	if err != nil {
		log.Warn("platform detection failed", "error", err)
		info = nil
	}
	ua := platform.UserAgent(Version, info)
	log.Debug("starting", "user_agent", ua)

	downloader := binary.NewDownloader(
		binary.WithUserAgent(ua),
		binary.WithDownloadLogger(log),
	)

	locatorOpts := []release.Option{
		release.WithHTTPClient(downloader.Client()),
		release.WithUserAgent(ua),
		release.WithLogger(log),
	}
	if opts.apiBaseURL != "" {
		locatorOpts = append(locatorOpts, release.WithBaseURL(opts.apiBaseURL))
	}
	locator, err := release.NewLocator(locatorOpts...)
	if err != nil {
		return err
	}


	fetcher := &service.Fetcher{
		Locator:    locator,
		Downloader: downloader,
		Unpacker:   binary.NewUnpacker(binary.WithHost(info), binary.WithUnpackLogger(log)),
		Notes:      notes.NewRenderer(opts.stdout),
		Pause:      pause.New(opts.stdin, opts.stdout),
		Out:        opts.stdout,
		Log:        log,
		Clock:      service.RealClock{},
		NoPause:    opts.noPause,
	}

	return fetcher.Run(ctx, sel)
}
