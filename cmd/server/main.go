package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/cds-portal/internal/clock"
	"github.com/jrsteele09/cds-portal/internal/config"
	"github.com/jrsteele09/cds-portal/internal/metrics"
	"github.com/jrsteele09/cds-portal/mockauth"
	"github.com/jrsteele09/cds-portal/portal"
	"github.com/jrsteele09/cds-portal/recipes"
	"github.com/jrsteele09/cds-portal/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const sweepInterval = time.Minute

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Warn().Err(err).Msg("Ignoring .env file")
	}
	for {
		if err := run(); err != nil {
			log.Error().Err(err).Msg("Error running server")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	setupLogging(c)
	displayAppname(c.GetAppName())

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewCollector(reg)

	searcher := newSearcher(c)
	repo := portal.NewInMemoryRepo(portal.Deps{
		Clock:       clock.Real(),
		Recorder:    recorder,
		LoginDelay:  c.GetLoginDelay(),
		NewProvider: providerFactory(c),
		NewBrowser: func() *recipes.Browser {
			return recipes.NewBrowser(searcher, c.GetRecipeEmptyQueryPolicy())
		},
	})

	handler, err := server.New(c, repo, searcher, recorder, reg)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go portal.RunSweeper(ctx, repo, time.Now, c.GetMaxSessionAge(), sweepInterval)

	srv := &http.Server{Addr: c.GetPort(), Handler: handler, ReadHeaderTimeout: 10 * time.Second}
	errs := make(chan error, 1)
	go func() {
		errs <- listenAndServe(srv)
	}()

	select {
	case err := <-errs:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(srv)
}

// newSearcher uses the configured search endpoint, or the built-in dataset when there is none.
func newSearcher(c config.Config) recipes.Searcher {
	endpoint := c.GetRecipeSearchURL()
	if endpoint == "" {
		log.Info().Msg("RECIPE_SEARCH_URL not set, using the mock recipe dataset")
		return recipes.NewStaticSearcher(recipes.MockRecipes())
	}
	httpClient := &http.Client{Timeout: c.GetRecipeSearchTimeout()}
	return recipes.NewHTTPClient(endpoint, httpClient, c.GetRecipeSearchRPS())
}

func providerFactory(c config.Config) func(onSignedIn func()) (*mockauth.Provider, error) {
	hostedUI := mockauth.NewHostedUI(c)
	delays := mockauth.Delays{
		Probe:    c.GetAuthProbeDelay(),
		Redirect: c.GetAuthRedirectDelay(),
		Notify:   c.GetAuthNotifyDelay(),
		Signout:  c.GetAuthSignoutDelay(),
	}
	profile := mockauth.Profile{Email: c.GetOIDCMockEmail(), Subject: c.GetOIDCMockSubject()}
	return func(onSignedIn func()) (*mockauth.Provider, error) {
		return mockauth.New(
			mockauth.WithHostedUI(hostedUI),
			mockauth.WithDelays(delays),
			mockauth.WithProfile(profile),
			mockauth.WithSignInListener(onSignedIn),
		)
	}
}

func setupLogging(c config.Config) {
	level, err := zerolog.ParseLevel(c.GetLogLevel())
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if c.GetEnv() == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
