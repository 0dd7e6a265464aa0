// Command gosso-smoke exercises a goSSO deployment end to end against live
// Redis and Postgres instances: register a license, log a user in, validate
// and refresh the session, then issue, validate, and revoke a user credential
// token. Intended for verifying a new environment, not for load generation.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	gosso "github.com/MrEthical07/goSSO"
	"github.com/MrEthical07/goSSO/repository"
)

var flags struct {
	redisAddr      string
	redisPassword  string
	redisDB        int
	postgresDSN    string
	licenseFile    string
	consumerKey    string
	consumerSecret string
	username       string
	password       string
	logLevel       string
	timeout        time.Duration
}

var rootCmd = &cobra.Command{
	Use:   "gosso-smoke",
	Short: "Run the full goSSO authentication flow against live backends",
	Long: `gosso-smoke connects to the given Redis and Postgres instances and walks
every authentication flow once: license registration, SSO login, session
validation, keep-alive, and the user credential token lifecycle.

The named user must already exist in the users table with a password hash the
configured scheme can verify.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&flags.redisAddr, "redis-addr", "localhost:6379", "redis address")
	f.StringVar(&flags.redisPassword, "redis-password", "", "redis password")
	f.IntVar(&flags.redisDB, "redis-db", 0, "redis database index")
	f.StringVar(&flags.postgresDSN, "postgres-dsn", "", "postgres connection string")
	f.StringVar(&flags.licenseFile, "licenses", "", "path to the YAML license file")
	f.StringVar(&flags.consumerKey, "consumer-key", "", "license consumer key to register with")
	f.StringVar(&flags.consumerSecret, "consumer-secret", "", "license consumer secret")
	f.StringVar(&flags.username, "username", "", "user to log in as")
	f.StringVar(&flags.password, "password", "", "user password")
	f.StringVar(&flags.logLevel, "log-level", "info", "log level (trace|debug|info|warn|error)")
	f.DurationVar(&flags.timeout, "timeout", 30*time.Second, "overall run timeout")

	for _, name := range []string{"postgres-dsn", "licenses", "consumer-key", "consumer-secret", "username", "password"} {
		rootCmd.MarkFlagRequired(name)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	log := hclog.New(&hclog.LoggerOptions{
		Name:  "gosso-smoke",
		Level: hclog.LevelFromString(flags.logLevel),
	})

	ctx, cancel := context.WithTimeout(cmd.Context(), flags.timeout)
	defer cancel()

	rdb := redis.NewClient(&redis.Options{
		Addr:     flags.redisAddr,
		Password: flags.redisPassword,
		DB:       flags.redisDB,
	})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}

	repo, err := repository.Open(ctx, flags.postgresDSN)
	if err != nil {
		return fmt.Errorf("postgres connect: %w", err)
	}
	defer repo.Close()

	engine, err := gosso.New().
		WithRedis(rdb).
		WithRepository(repo).
		WithLicenseFile(flags.licenseFile).
		WithLogger(log.Named("engine")).
		Build()
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}
	if err := engine.Start(ctx); err != nil {
		return fmt.Errorf("start engine: %w", err)
	}
	defer engine.Close()

	// License and session flows.
	accountToken, err := engine.RegisterLicense(ctx, flags.consumerKey, flags.consumerSecret)
	if err != nil {
		return fmt.Errorf("register license: %w", err)
	}
	log.Info("account token issued")

	login, err := engine.LoginUser(ctx, accountToken, flags.username, flags.password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	log.Info("logged in", "username", login.Username, "expires_in", login.ExpiresIn)

	if err := engine.ValidateSession(ctx, accountToken, login.SSOCookie); err != nil {
		return fmt.Errorf("validate session: %w", err)
	}
	log.Info("session validated")

	if err := engine.KeepAlive(ctx, accountToken, login.SSOCookie); err != nil {
		return fmt.Errorf("keep alive: %w", err)
	}
	log.Info("session refreshed")

	// User credential token lifecycle.
	user, err := engine.AuthenticateUser(ctx, flags.username, flags.password)
	if err != nil {
		return fmt.Errorf("authenticate user: %w", err)
	}
	userToken, err := engine.IssueUserToken(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("issue user token: %w", err)
	}
	log.Info("user token issued", "user_id", user.ID)

	if err := engine.ValidateUserToken(ctx, userToken, user.ID); err != nil {
		return fmt.Errorf("validate user token: %w", err)
	}
	log.Info("user token validated")

	removed, err := engine.Logout(ctx, userToken)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	log.Info("user token revoked", "removed", removed)

	snap := engine.MetricsSnapshot()
	log.Info("counters",
		"license_granted", snap.LicenseGranted,
		"login_success", snap.LoginSuccess,
		"session_validated", snap.SessionValidated,
		"user_token_issued", snap.UserTokenIssued,
		"user_token_validated", snap.UserTokenValidated,
	)

	fmt.Println("all flows passed")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
