package app

import (
	"log/slog"

	"github.com/abhisek/vizlearn/internal/clock"
	"github.com/abhisek/vizlearn/internal/progress"
	"github.com/abhisek/vizlearn/internal/registry"
	"github.com/abhisek/vizlearn/internal/screen"
	"github.com/abhisek/vizlearn/internal/screens/player"
	"github.com/abhisek/vizlearn/internal/screens/quiz"
)

// opener builds player and quiz screens from the registry.
type opener struct {
	prog   *progress.Store
	clock  clock.Clock
	logger *slog.Logger
}

var _ screen.Opener = (*opener)(nil)

func (o *opener) Player(slug string) (screen.Screen, error) {
	cfg, err := registry.Lookup(slug)
	if err != nil {
		return nil, err
	}
	p, err := player.New(cfg, registry.ResolveComponent(slug), o.prog, o,
		player.WithClock(o.clock), player.WithLogger(o.logger.With("slug", slug)))
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (o *opener) Quiz(slug string) (screen.Screen, error) {
	cfg, err := registry.Lookup(slug)
	if err != nil {
		return nil, err
	}
	q, err := quiz.New(cfg, o.prog, o, o.logger.With("slug", slug))
	if err != nil {
		return nil, err
	}
	return q, nil
}
