package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/teamrespawntv/halo-quotes/internal/config"
	"github.com/teamrespawntv/halo-quotes/internal/logging"
	"github.com/teamrespawntv/halo-quotes/internal/origin/localdir"
	"github.com/teamrespawntv/halo-quotes/internal/poster"
)

const appVersion = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("poster", flag.ContinueOnError)
	flags.SetOutput(stderr)
	target := flags.String("target", "bluesky", "where to post: bluesky or x")
	dryRun := flags.Bool("dry-run", false, "print the post without publishing it")
	envFile := flags.String("env-file", ".env", "optional .env file")
	quotesDir := flags.String("quotes-dir", "", "directory of quote files (overrides QUOTES_DIR)")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	envErr := config.LoadDotEnv(*envFile)
	cfg := config.LoadPoster()
	if *quotesDir != "" {
		cfg.QuotesDir = *quotesDir
	}
	logCfg := config.Load().Log
	logger := logging.NewLogger(logging.Config{
		Level:   logCfg.Level,
		Format:  logCfg.Format,
		Service: "halo-quotes-poster",
		Version: appVersion,
		Output:  stderr,
	})
	if envErr != nil {
		logger.Warn("failed to load .env file", "error", envErr)
	}

	publisher, err := buildPublisher(*target, cfg)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	if !*dryRun {
		if credErr := publisher.CheckCredentials(); credErr != nil {
			logging.Error(ctx, logger, "bot execution failed", credErr)
			return 1
		}
	}

	runner := poster.NewRunner(localdir.NewDir(cfg.QuotesDir), publisher, logger,
		poster.WithDryRun(*dryRun),
		poster.WithOutput(stdout),
	)
	res, err := runner.Run(ctx)
	if err != nil {
		logging.Error(ctx, logger, "bot execution failed", err)
		return 1
	}
	if res.URL != "" {
		fmt.Fprintf(stdout, "Post URL: %s\n", res.URL)
	}
	return 0
}

func buildPublisher(target string, cfg config.PosterConfig) (poster.Publisher, error) {
	switch target {
	case "bluesky", "bsky":
		return poster.NewBluesky(cfg.Bluesky, nil), nil
	case "x", "twitter":
		return poster.NewX(cfg.X, nil), nil
	default:
		return nil, fmt.Errorf("unknown target %q: want bluesky or x", target)
	}
}

