package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/Shafnaa/scrapping-tokopedia-review/config"
	"github.com/Shafnaa/scrapping-tokopedia-review/internal/httputil"
	"github.com/Shafnaa/scrapping-tokopedia-review/internal/session"
	"github.com/Shafnaa/scrapping-tokopedia-review/internal/stealth"
	"github.com/Shafnaa/scrapping-tokopedia-review/internal/tokopedia"
	"github.com/Shafnaa/scrapping-tokopedia-review/internal/ui"
)

var (
	cfg    *config.Config
	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tokrev",
	Short: "Tokopedia review harvester",
	Long:  "Harvests customer reviews from Tokopedia's GraphQL gateway by shop, product or category, and flattens them into CSV datasets.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("output", "", "Output root directory for CSV files")
	rootCmd.PersistentFlags().String("delay-profile", "normal", "Delay profile: cautious, normal, aggressive")
	rootCmd.PersistentFlags().Bool("respect-robots", true, "Respect robots.txt rules")
	rootCmd.PersistentFlags().Bool("exact-pages", false, "Fetch exactly the requested page count, ignoring the gateway's end-of-pages signal")
	rootCmd.PersistentFlags().Int("max-concurrent", 0, "Concurrent review fetches during category fan-out")
}

func initConfig() {
	cfg = config.DefaultConfig()
	cfg.LoadFromEnv()

	// Override from flags
	if v, _ := rootCmd.PersistentFlags().GetString("output"); v != "" {
		cfg.OutputDir = v
	}
	if v, _ := rootCmd.PersistentFlags().GetString("delay-profile"); v != "" {
		cfg.DelayProfile = v
	}
	if v, _ := rootCmd.PersistentFlags().GetBool("respect-robots"); !v {
		cfg.RespectRobots = false
	}
	if v, _ := rootCmd.PersistentFlags().GetBool("exact-pages"); v {
		cfg.AdaptivePaging = false
	}
	if v, _ := rootCmd.PersistentFlags().GetInt("max-concurrent"); v > 0 {
		cfg.MaxConcurrent = v
	}

	logger = newLogger(cfg)
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	l := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	if cfg.Env == "dev" || cfg.Env == "development" {
		l = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			Level(level).With().Timestamp().Logger()
	}
	return l
}

// buildHTTPClient creates the shared gateway client behind the polite
// transport pipeline.
func buildHTTPClient() *http.Client {
	robots := stealth.NewRobotsChecker(&http.Client{Timeout: 10 * time.Second}, cfg.RespectRobots)

	transport := &stealth.Transport{
		Base: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
		},
		Robots:      robots,
		Delay:       stealth.NewHumanDelay(stealth.DelayProfile(cfg.DelayProfile)),
		RateLimiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst),
	}

	return httputil.NewHTTPClient(transport)
}

// setupHarvester bootstraps a session and wires the harvesting engine.
// Bootstrap failure is fatal: without cookies every query comes back
// blocked.
func setupHarvester(ctx context.Context) (*tokopedia.Harvester, *tokopedia.Client, error) {
	hc := buildHTTPClient()

	spin := ui.NewSpinner()
	spin.Start("Establishing session...")
	sess, err := session.Bootstrap(ctx, hc, session.GatewayURL)
	if err != nil && cfg.HeadlessFallback {
		spin.Update("Plain bootstrap failed, trying headless browser...")
		logger.Debug().Err(err).Msg("plain bootstrap failed")
		sess, err = session.BootstrapHeadless(ctx)
	}
	spin.Stop()
	if err != nil {
		return nil, nil, err
	}
	logger.Debug().Str("user_agent", sess.Fingerprint.UserAgent).Msg("session established")

	client := tokopedia.NewClient(hc, sess, logger)
	limiter := rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst)
	harvester := tokopedia.NewHarvester(client, limiter, cfg.MaxConcurrent)
	harvester.SetAdaptivePaging(cfg.AdaptivePaging)
	return harvester, client, nil
}
