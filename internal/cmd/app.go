package cmd

import (
	"github.com/swasthaai/swastha-cli/internal/api"
	"github.com/swasthaai/swastha-cli/internal/errors"
	"github.com/swasthaai/swastha-cli/internal/config"
	"github.com/swasthaai/swastha-cli/internal/log"
	"github.com/swasthaai/swastha-cli/internal/medalert"
	"github.com/swasthaai/swastha-cli/internal/session"
)

// App is the wired-up client: resolved configuration, the session store, and
// one API client per backend base URL.
type App struct {
	Config config.Config
	Logger *log.Logger
	Store  *session.Store
	User   *api.Client
	Doctor *api.Client
	AI     *api.Client
	Cache  *medalert.Cache
}

// newApp resolves configuration and wires the session store and clients.
// The session is sealed at rest unless --plain-session asks otherwise.
func newApp() (*App, error) {
	var cfg config.Config
	var err error
	if configFlag != "" {
		cfg, err = config.LoadFile(configFlag)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	logCfg := log.DefaultConfig()
	logCfg.Level = log.ParseLevel(cfg.LogLevel)
	if verboseFlag {
		logCfg = log.VerboseConfig()
	}
	logger := log.New(logCfg)
	log.SetDefaultLogger(logger)

	var backing session.BackingStore
	if plainFlag {
		backing = session.NewFileStore(cfg.SessionFile())
	} else {
		backing, err = session.NewSealedStore(cfg.SealedSessionFile(), cfg.SealKeyFile())
		if err != nil {
			return nil, err
		}
	}
	store := session.New(backing, logger)

	return &App{
		Config: cfg,
		Logger: logger,
		Store:  store,
		User:   api.NewClient(cfg.UserAPIURL, store, logger),
		Doctor: api.NewClient(cfg.DoctorAPIURL, store, logger),
		AI:     api.NewClient(cfg.AIAPIURL, store, logger),
		Cache:  medalert.NewCache(),
	}, nil
}

// requireSession returns the app only when a user is logged in.
func requireSession() (*App, error) {
	app, err := newApp()
	if err != nil {
		return nil, err
	}
	if !app.Store.IsLoggedIn() {
		return nil, errors.NewNotLoggedInError()
	}
	return app, nil
}
