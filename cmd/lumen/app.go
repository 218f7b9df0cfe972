package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/lumenlabs/lumen/internal/adapters/identity"
	"github.com/lumenlabs/lumen/internal/adapters/llm"
	"github.com/lumenlabs/lumen/internal/adapters/notify"
	fsbackend "github.com/lumenlabs/lumen/internal/adapters/storage/firestore"
	"github.com/lumenlabs/lumen/internal/adapters/storage/localkv"
	"github.com/lumenlabs/lumen/internal/config"
	"github.com/lumenlabs/lumen/internal/domain"
	"github.com/lumenlabs/lumen/internal/observability"
	"github.com/lumenlabs/lumen/internal/store"
)

// app wires the backends, identity, and model clients shared by every
// command.
type app struct {
	cfg      *config.Config
	identity *identity.Static
	provider *store.Provider
	notifier domain.Notifier

	streamer   domain.CompletionStreamer
	verses     domain.VerseGenerator
	horoscopes domain.HoroscopeGenerator

	kv     *localkv.KV
	remote *fsbackend.Backend
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	observability.SetLevel(cfg.LogLevel)

	id := identity.NewStatic(cfg.UserID)
	guest := id.CurrentUser().IsGuest()
	if err := cfg.Validate(guest); err != nil {
		return nil, err
	}

	kv, err := localkv.OpenKV(filepath.Join(cfg.DataDir, "local.db"))
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:      cfg,
		identity: id,
		kv:       kv,
		notifier: notify.NewConsole(cfg.NotificationsGranted),
	}
	a.provider = &store.Provider{Local: localkv.NewBackend(kv)}

	if !guest {
		remote, err := fsbackend.NewBackend(ctx, cfg.FirestoreProject)
		if err != nil {
			kv.Close()
			return nil, fmt.Errorf("connecting remote store: %w", err)
		}
		a.remote = remote
		a.provider.Remote = remote
	}

	if cfg.UseMockLLM {
		mock := llm.NewMockClient()
		a.streamer, a.verses, a.horoscopes = mock, mock, mock
	} else {
		gemini, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GCPProjectID, cfg.GCPLocation, cfg.ModelName)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.streamer, a.verses, a.horoscopes = gemini, gemini, gemini
	}

	return a, nil
}

func (a *app) user() domain.UserID { return a.identity.CurrentUser() }

func (a *app) Close() {
	if a.remote != nil {
		a.remote.Close()
	}
	if a.kv != nil {
		a.kv.Close()
	}
}
