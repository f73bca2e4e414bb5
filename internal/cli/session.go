package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/sadopc/playtally/internal/config"
	"github.com/sadopc/playtally/internal/dashboard"
	"github.com/sadopc/playtally/internal/entry"
	"github.com/sadopc/playtally/internal/loader"
	"github.com/sadopc/playtally/internal/store"
)

// session is the config and store one command runs against.
type session struct {
	cfg   config.Config
	store *store.Store
}

func (o *options) open() (*session, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	path := cfg.Data.DBPath
	if o.dbPath != "" {
		path = o.dbPath
	}
	if path == "" {
		return nil, errors.New("no database path: set data.db_path or pass --db")
	}
	s, err := store.New(path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	slog.Debug("opened store", "path", path)
	return &session{cfg: cfg, store: s}, nil
}

func (s *session) Close() error {
	return s.store.Close()
}

// base returns the stored entries. An empty store is first filled from data.source
// when one is configured. A source that cannot be read comes back as loadErr.
func (s *session) base(ctx context.Context) (entries []entry.Entry, loadErr, err error) {
	entries, err = s.store.ListEntries(store.EntryFilter{})
	if err != nil {
		return nil, nil, err
	}
	if len(entries) > 0 || s.cfg.Data.Source == "" {
		return entries, nil, nil
	}

	res := loader.Load(ctx, s.cfg.Data.Source)
	if res.Err != nil {
		return nil, res.Err, nil
	}
	if _, err := s.store.ImportEntries(res.Source, res.Entries, res.Rows, res.Dropped); err != nil {
		return nil, nil, err
	}
	slog.Info("imported configured source", "source", res.Source, "entries", len(res.Entries))
	return res.Entries, nil, nil
}

// options maps the config file, then applies the chart preferences saved from the TUI.
func (s *session) options() dashboard.Options {
	opts := dashboard.OptionsFromConfig(s.cfg)
	opts.HeatLow = s.store.SettingOr(store.SettingHeatLow, opts.HeatLow)
	opts.HeatHigh = s.store.SettingOr(store.SettingHeatHigh, opts.HeatHigh)
	if p, err := strconv.ParseFloat(s.store.SettingOr(store.SettingBandPadding, ""), 64); err == nil {
		opts.BandPadding = p
	}
	return opts
}

// state recomputes the dashboard for participant, falling back to the saved filter.
// A failed load yields the "unable to load" state together with the load error.
func (s *session) state(ctx context.Context, participant string) (dashboard.State, error) {
	base, loadErr, err := s.base(ctx)
	if err != nil {
		return dashboard.State{}, err
	}
	if loadErr != nil {
		return dashboard.Failed(loadErr, s.options()), fmt.Errorf("load %s: %w", s.cfg.Data.Source, loadErr)
	}
	if participant == "" {
		participant = s.store.Participant()
	}
	return dashboard.Recompute(base, participant, s.options())
}
