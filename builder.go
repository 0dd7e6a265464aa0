package goSSO

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/redis/go-redis/v9"

	"github.com/MrEthical07/goSSO/password"
	"github.com/MrEthical07/goSSO/repository"
	"github.com/MrEthical07/goSSO/script"
	"github.com/MrEthical07/goSSO/tokenstore"
)

// Builder assembles an [Engine]. Every dependency is injected explicitly;
// there is no ambient global cache client or script registry.
type Builder struct {
	config   Config
	redis    redis.UniversalClient
	repo     repository.Repository
	verifier password.Verifier
	licenses LicenseMap
	logger   hclog.Logger
	registry *script.Registry

	licenseErr error
	built      bool
}

// New returns a Builder with default configuration.
func New() *Builder {
	return &Builder{config: defaultConfig()}
}

// WithConfig replaces the configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithRedis sets the cache client. Required.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithRepository sets the durable store. Required.
func (b *Builder) WithRepository(repo repository.Repository) *Builder {
	b.repo = repo
	return b
}

// WithVerifier overrides the password verifier chosen by Config.Password.
func (b *Builder) WithVerifier(v password.Verifier) *Builder {
	b.verifier = v
	return b
}

// WithLicenses sets the consumer key/secret map. The map is copied; later
// mutation by the caller does not reach the engine.
func (b *Builder) WithLicenses(licenses LicenseMap) *Builder {
	copied := make(LicenseMap, len(licenses))
	for k, v := range licenses {
		copied[k] = v
	}
	b.licenses = copied
	return b
}

// WithLicenseFile loads the license map from a YAML file. A load failure
// surfaces at Build.
func (b *Builder) WithLicenseFile(path string) *Builder {
	licenses, err := LoadLicenses(path)
	if err != nil {
		b.licenseErr = err
		return b
	}
	b.licenses = licenses
	return b
}

// WithLogger sets the structured logger. Defaults to a null logger.
func (b *Builder) WithLogger(log hclog.Logger) *Builder {
	b.logger = log
	return b
}

// WithScriptRegistry overrides the embedded script registry, for deployments
// that load script sources from disk or config instead.
func (b *Builder) WithScriptRegistry(reg *script.Registry) *Builder {
	b.registry = reg
	return b
}

// WithMetricsEnabled toggles the engine counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build validates the configuration, wires every component, and returns the
// Engine. Build performs no I/O; call [Engine.Start] to preload scripts and
// start the expiration watcher.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}
	if b.licenseErr != nil {
		return nil, b.licenseErr
	}
	if b.redis == nil {
		return nil, errors.New("redis client required")
	}
	if b.repo == nil {
		return nil, errors.New("repository required")
	}
	if len(b.licenses) == 0 {
		return nil, errors.New("licenses must be provided")
	}
	if err := b.config.Validate(); err != nil {
		return nil, err
	}

	log := b.logger
	if log == nil {
		log = hclog.NewNullLogger()
	}

	verifier := b.verifier
	if verifier == nil {
		switch b.config.Password.Scheme {
		case SchemeSHA256Hex:
			verifier = password.SHA256Hex{}
		default:
			a, err := password.NewArgon2(b.config.Password.Argon2)
			if err != nil {
				return nil, fmt.Errorf("password config: %w", err)
			}
			verifier = a
		}
	}

	registry := b.registry
	if registry == nil {
		var err error
		registry, err = script.DefaultRegistry()
		if err != nil {
			return nil, fmt.Errorf("script registry: %w", err)
		}
	}

	exec := script.NewExecutor(b.redis, registry, log.Named("script"))
	store := tokenstore.NewStore(b.redis, exec)
	metrics := NewMetrics(b.config.Metrics)

	cleanup := NewCleanupCoordinator(b.repo, log.Named("cleanup"), metrics,
		b.config.Notifications.CleanupTimeout)
	watcher := NewExpirationWatcher(b.redis,
		b.config.Notifications.Channel,
		b.config.Notifications.TokenKeyPrefix,
		log.Named("watcher"),
		cleanup.HandleExpiredToken)

	engine := &Engine{
		config:   b.config,
		log:      log,
		store:    store,
		exec:     exec,
		repo:     b.repo,
		verifier: verifier,
		licenses: b.licenses,
		metrics:  metrics,
		watcher:  watcher,
		cleanup:  cleanup,
	}

	b.built = true
	return engine, nil
}
