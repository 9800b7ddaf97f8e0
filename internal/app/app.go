package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/Adda-Baaj/foodstack-client/internal/config"
	"github.com/Adda-Baaj/foodstack-client/internal/credentials"
	"github.com/Adda-Baaj/foodstack-client/internal/domain"
	"github.com/Adda-Baaj/foodstack-client/internal/logger"
	"github.com/Adda-Baaj/foodstack-client/internal/storage"
	"github.com/Adda-Baaj/foodstack-client/pkg/apiclient"
	"github.com/Adda-Baaj/foodstack-client/pkg/endpoints"
	"github.com/Adda-Baaj/foodstack-client/pkg/httpclient"
	"github.com/Adda-Baaj/foodstack-client/pkg/publishers"
)

const (
	loginPath = "/security/login"

	headerApp        = "x-keyclic-app"
	headerAppVersion = "x-keyclic-app-version"
)

// ErrUnknownEndpoint is returned by Call for ids missing from the catalog.
var ErrUnknownEndpoint = errors.New("unknown endpoint")

// App wires the API client with credential storage, the endpoint catalog and
// the call-event sinks.
type App struct {
	cfg     *config.Config
	client  *apiclient.Client
	creds   *credentials.Service
	catalog *endpoints.Catalog
	fanout  *publishers.Fanout
	store   storage.Store
	log     logger.Logger
}

// Option customizes NewApp.
type Option func(*options)

type options struct {
	doer httpclient.Doer
}

// WithDoer replaces the HTTP transport used by the API client.
func WithDoer(d httpclient.Doer) Option {
	return func(o *options) { o.doer = d }
}

// NewApp builds the runtime from config. An empty or missing endpoints_file
// leaves the catalog empty; an empty publishers_file disables call-event sinks.
func NewApp(ctx context.Context, cfg *config.Config, log logger.Logger, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	catalog, err := loadCatalog(cfg.EndpointsFile, log)
	if err != nil {
		return nil, err
	}

	fanout, err := publishers.FromFile(ctx, cfg.PublishersFile, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	log.InfoObj("publishers initialized", "publishers_meta", map[string]any{
		"file":  cfg.PublishersFile,
		"count": fanout.Size(),
	})

	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storage.Options{DefaultTTL: cfg.TokenTTL})
	if err != nil {
		_ = fanout.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":              cfg.StorageType,
		"path":              cfg.BBoltPath,
		"token_ttl_seconds": int(cfg.TokenTTL.Seconds()),
	})

	clientOpts := []apiclient.Option{
		apiclient.WithRegistry(domain.Registry()),
		apiclient.WithLogger(log),
		apiclient.WithAfterHook(publishers.Hook(fanout, log)),
	}
	if o.doer != nil {
		clientOpts = append(clientOpts, apiclient.WithDoer(o.doer))
	}
	client := apiclient.New(apiclient.Config{
		BaseURL:        cfg.BaseURL,
		DefaultHeaders: config.HeaderValues(cfg.DefaultHeaders),
		Headers:        config.HeaderValues(cfg.Headers),
		Timeout:        cfg.RequestTimeout,
	}, clientOpts...)

	return &App{
		cfg:     cfg,
		client:  client,
		creds:   credentials.NewService(store, cfg.TokenTTL),
		catalog: catalog,
		fanout:  fanout,
		store:   store,
		log:     log,
	}, nil
}

// loadCatalog reads the endpoint catalog. A missing file is skipped the same
// way as the optional client file, so commands that do not call catalog
// endpoints still work from any directory.
func loadCatalog(path string, log logger.Logger) (*endpoints.Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}
	catalog, err := endpoints.LoadCatalog(path)
	if errors.Is(err, os.ErrNotExist) {
		log.WarnObj("endpoints catalog not found; catalog calls disabled", "endpoints_file", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load endpoints catalog: %w", err)
	}
	log.InfoObj("endpoints catalog loaded", "endpoints_meta", map[string]any{
		"count": len(catalog.All()),
		"ids":   catalog.IDs(),
	})
	return catalog, nil
}

// Client exposes the underlying API client.
func (a *App) Client() *apiclient.Client { return a.client }

// Catalog returns the loaded endpoint catalog, which may be nil.
func (a *App) Catalog() *endpoints.Catalog { return a.catalog }

// LoginSpec describes the login call for the given credentials.
func (a *App) LoginSpec(email, password string) apiclient.CallSpec {
	headers := map[string]any{}
	if a.cfg.AppID != "" {
		headers[headerApp] = a.cfg.AppID
	}
	if a.cfg.AppVersion != "" {
		headers[headerAppVersion] = a.cfg.AppVersion
	}
	return apiclient.CallSpec{
		Path:         loginPath,
		Method:       http.MethodPost,
		HeaderParams: headers,
		Body:         domain.LoginData{Email: email, Password: password},
		Credentials:  apiclient.NoAuth(),
		Returns:      apiclient.Model(domain.ShapeLogin),
	}
}

// Login exchanges email and password for an access token and stores it.
func (a *App) Login(ctx context.Context, email, password string) (domain.LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return domain.LoginResult{}, fmt.Errorf("email and password are required")
	}

	res, _, err := apiclient.InvokeAs[domain.LoginResult](ctx, a.client, a.LoginSpec(email, password))
	if err != nil {
		return domain.LoginResult{}, fmt.Errorf("login: %w", err)
	}
	if err := a.creds.SaveToken(res.AccessToken); err != nil {
		return domain.LoginResult{}, fmt.Errorf("login: %w", err)
	}
	a.log.InfoObj("login succeeded", "auth", map[string]any{"email": email})
	return res, nil
}

// Logout forgets the stored access token.
func (a *App) Logout(context.Context) error {
	if err := a.creds.Clear(); err != nil {
		return err
	}
	a.log.InfoObj("logged out", "auth", nil)
	return nil
}

// IsLoggedIn reports whether an access token is stored.
func (a *App) IsLoggedIn(ctx context.Context) bool {
	return a.creds.IsLoggedIn(ctx)
}

// Call invokes the catalog endpoint id. Endpoints requiring auth use the
// stored token and fail with *apiclient.AuthenticationError when there is none.
func (a *App) Call(ctx context.Context, id string, params endpoints.CallParams) (*apiclient.CallResult, error) {
	ep, ok := a.catalog.ByID(id)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownEndpoint, id)
	}

	var creds apiclient.Credentials
	if ep.RequiresAuth() {
		creds = a.creds.Bearer(ctx)
	}
	res, err := a.client.Invoke(ctx, ep.CallSpec(params, creds))
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", ep.ID, err)
	}
	return res, nil
}

// Close releases the store and publisher connections.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	var errs []error
	if err := a.fanout.Close(); err != nil {
		errs = append(errs, err)
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.ErrorObj("storage close failed", "error", err)
			errs = append(errs, fmt.Errorf("close storage: %w", err))
		}
	}
	return errors.Join(errs...)
}
