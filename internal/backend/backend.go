// Package backend resolves which persistence backend a session uses. The
// decision is made exactly once, at startup, from static configuration;
// changing the environment mid-session has no effect until restart.
package backend

import (
	"go.uber.org/zap"

	"github.com/hivecastapp/hivecast/internal/config"
	"github.com/hivecastapp/hivecast/pkg/client"
	"github.com/hivecastapp/hivecast/pkg/store"
	"github.com/hivecastapp/hivecast/pkg/store/localstore"
)

// Backend is the resolved persistence stack for one session.
//
// Local is always open: events and settings live there in both modes, and
// the destructive wipe clears it regardless of which store is active.
// Client is nil in local mode.
type Backend struct {
	Mode   store.Mode
	Store  store.Store
	Local  *localstore.DB
	Client *client.Client
}

// Open resolves the backend from configuration. Remote mode requires a
// well-formed API URL and a key; otherwise everything persists locally.
func Open(cfg config.Config, log *zap.Logger) (*Backend, error) {
	if log == nil {
		log = zap.NewNop()
	}

	local, err := localstore.Open(cfg.DataDir, log.Named("localstore"))
	if err != nil {
		return nil, err
	}

	b := &Backend{Mode: store.ModeLocal, Store: local, Local: local}
	if cfg.RemoteConfigured() {
		b.Mode = store.ModeRemote
		b.Client = client.New(cfg.APIURL, cfg.APIKey, log.Named("client"))
		b.Store = b.Client
	}
	log.Info("backend resolved", zap.Stringer("mode", b.Mode))
	return b, nil
}
