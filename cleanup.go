package goSSO

import (
	"context"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/MrEthical07/goSSO/repository"
)

// CleanupCoordinator removes durable token records whose cache shadow copies
// have expired, keeping the durable store from accumulating dead rows.
type CleanupCoordinator struct {
	repo    repository.Repository
	log     hclog.Logger
	metrics *Metrics
	timeout time.Duration
}

// NewCleanupCoordinator wires a coordinator. timeout bounds each durable
// delete so one slow statement cannot stall the expiration watcher.
func NewCleanupCoordinator(repo repository.Repository, log hclog.Logger, metrics *Metrics, timeout time.Duration) *CleanupCoordinator {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &CleanupCoordinator{repo: repo, log: log, metrics: metrics, timeout: timeout}
}

// HandleExpiredToken deletes the durable record for an expired cache key.
// Failures are logged and dropped, never retried and never propagated: the
// watcher loop must keep consuming notifications regardless. A record already
// gone (explicit logout raced the TTL) is the expected case, not an error.
func (c *CleanupCoordinator) HandleExpiredToken(token string) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	existed, err := c.repo.DeleteToken(ctx, token)
	if err != nil {
		c.metrics.Inc(MetricCleanupFailed)
		c.log.Error("durable delete for expired token failed", "error", err)
		return
	}

	if existed {
		c.metrics.Inc(MetricCleanupDeleted)
		c.log.Debug("expired token removed from durable store")
	} else {
		c.log.Debug("expired token had no durable record")
	}
}
