package goSSO

import (
	"context"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/redis/go-redis/v9"
)

// ExpirationWatcher subscribes to the cache's key-expiration notifications
// and routes token-namespaced keys to a cleanup callback.
//
// The watcher is a fire-and-forget consumer: the callback must never block
// for long or panic, since one subscription feeds every expiry event.
type ExpirationWatcher struct {
	rdb       redis.UniversalClient
	channel   string
	prefix    string
	log       hclog.Logger
	onExpired func(token string)

	pubsub *redis.PubSub
	done   chan struct{}
}

// NewExpirationWatcher wires a watcher for the given notification channel and
// token key prefix. onExpired receives the bare token id, prefix stripped.
func NewExpirationWatcher(rdb redis.UniversalClient, channel, prefix string, log hclog.Logger, onExpired func(token string)) *ExpirationWatcher {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &ExpirationWatcher{
		rdb:       rdb,
		channel:   channel,
		prefix:    prefix,
		log:       log,
		onExpired: onExpired,
		done:      make(chan struct{}),
	}
}

// Start subscribes and launches the consumer goroutine. The subscription is
// confirmed synchronously so a dead Redis fails Start instead of dropping
// events silently.
func (w *ExpirationWatcher) Start(ctx context.Context) error {
	w.pubsub = w.rdb.Subscribe(ctx, w.channel)
	if _, err := w.pubsub.Receive(ctx); err != nil {
		w.pubsub.Close()
		return err
	}
	w.log.Info("subscribed to key expiration events", "channel", w.channel)

	go w.loop()
	return nil
}

// Close tears down the subscription and waits for the consumer goroutine to
// drain.
func (w *ExpirationWatcher) Close() {
	if w.pubsub == nil {
		return
	}
	w.pubsub.Close()
	<-w.done
}

func (w *ExpirationWatcher) loop() {
	defer close(w.done)
	for msg := range w.pubsub.Channel() {
		key := normalizeNotification(msg.Payload)

		if !strings.HasPrefix(key, w.prefix) {
			w.log.Debug("ignoring expired key outside token namespace", "key", key)
			continue
		}

		token := key[len(w.prefix):]
		if token == "" {
			w.log.Debug("expired key carries empty token id", "key", key)
			continue
		}
		w.onExpired(token)
	}
}

// normalizeNotification undoes the string-escaping layer some backends and
// proxies apply to expired key names: surrounding whitespace, backslash
// escapes for quotes and backslashes, and one layer of surrounding quotes.
// For a backend that delivers raw key names this is a no-op.
func normalizeNotification(s string) string {
	s = strings.TrimSpace(s)
	s = unescapeBasic(s)
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return strings.TrimSpace(s)
}

func unescapeBasic(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && (s[i+1] == '"' || s[i+1] == '\\') {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
