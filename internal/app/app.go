package app

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/five82/storefront/internal/api"
	"github.com/five82/storefront/internal/config"
	"github.com/five82/storefront/internal/debounce"
	"github.com/five82/storefront/internal/fetch"
	"github.com/five82/storefront/internal/location"
	"github.com/five82/storefront/internal/logging"
	"github.com/five82/storefront/internal/prefs"
	"github.com/five82/storefront/internal/session"
	"github.com/five82/storefront/internal/ui"
)

// Options configure the storefront console.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/storefront/prefs.toml
	Role       string // overrides the configured role when set
	APIBaseURL string // overrides the configured API address when set
}

// Run boots the console until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return errors.Wrap(err, "load config")
	}
	if opts.Role != "" {
		cfg.Role = opts.Role
	}
	if opts.APIBaseURL != "" {
		cfg.APIBaseURL = opts.APIBaseURL
	}

	role, err := session.ParseRole(cfg.Role)
	if err != nil {
		return err
	}

	logger, closer, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return errors.Wrap(err, "init logging")
	}
	defer closer.Close()

	client, err := api.NewClient(cfg.APIBaseURL, cfg.RequestTimeout)
	if err != nil {
		return errors.Wrap(err, "init api client")
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	console := Wire(client, session.New(role), userPrefs.LastPath, cfg, logger)
	console.Start(ctx)
	defer func() {
		cancel()
		console.Close()
	}()

	logger.WithFields(logrus.Fields{
		"api":  cfg.APIBaseURL,
		"role": role,
		"path": userPrefs.LastPath,
	}).Info("console started")

	return ui.Run(ui.Options{
		Context:   ctx,
		Stores:    console.Orchestrator.Stores(),
		Location:  console.Location,
		Keyword:   console.Keyword,
		Actions:   console.Orchestrator,
		Session:   console.Session,
		Refresh:   cfg.Refresh,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
		LogFile:   cfg.LogFile,
	})
}

// Console is the wired object graph behind the UI.
type Console struct {
	Session      *session.Session
	Location     *location.Location
	Orchestrator *fetch.Orchestrator
	Keyword      *debounce.Buffer

	cfg   config.Config
	log   logrus.FieldLogger
	stops []func()
}

// Wire builds the console around client without starting anything.
func Wire(client api.Fetcher, sess *session.Session, startPath string, cfg config.Config, log logrus.FieldLogger) *Console {
	log = logging.OrDiscard(log)
	if _, ok := fetch.ViewFor(startPath); !ok {
		startPath = fetch.Views[0].Path
	}
	loc := location.New(startPath)
	return &Console{
		Session:      sess,
		Location:     loc,
		Orchestrator: fetch.New(client, fetch.NewStores(), log.WithField("component", "fetch")),
		Keyword: debounce.New(loc, debounce.Options{
			Window: cfg.Debounce,
			Logger: log.WithField("component", "keyword"),
		}),
		cfg: cfg,
		log: log,
	}
}

// Start subscribes the fetch watcher and the keyword buffer to the location
// and starts the optional refresher. The current view is fetched at once.
func (c *Console) Start(ctx context.Context) {
	c.stops = append(c.stops, c.Location.Subscribe(func(s location.Snapshot) {
		c.Keyword.Sync(s.Values)
	}))
	c.stops = append(c.stops, c.Orchestrator.Watch(ctx, c.Location, c.Session))
	StartRefresher(ctx, c.Orchestrator, c.Location, c.Session, c.cfg.AutoRefresh)
}

// Close detaches every subscription, drops any pending keyword commit and
// waits for fetches still in flight.
func (c *Console) Close() {
	for _, stop := range c.stops {
		stop()
	}
	c.stops = nil
	c.Keyword.Close()
	c.Orchestrator.Wait()
}
