package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alkime/knob/internal/config"
	"github.com/alkime/knob/internal/feed"
	"github.com/alkime/knob/internal/history"
	"github.com/alkime/knob/internal/logger"
	"github.com/alkime/knob/internal/server"
	"github.com/alkime/knob/internal/tui"
	"github.com/alkime/knob/internal/tui/components/knob"
	"github.com/alkime/knob/pkg/channels"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
)

const (
	// events buffered per subscriber
	eventDepth = 64
)

// RunCmd runs the terminal knob.
type RunCmd struct {
	KnobFlags `embed:""`

	Rows    int    `flag:"" default:"10" help:"Knob height in rows (width is twice that)"`
	Addr    string `flag:"" optional:"" help:"Serve the HTTP mirror on this address (overrides ADDR)"`
	LogFile string `flag:"" default:"knob.log" help:"Log file (the terminal is taken by the UI)"`
}

// Run executes the run command.
//
//nolint:funlen // CLI command with multiple setup steps
func (c *RunCmd) Run() error {
	appCfg, err := config.LoadConfig()
	if err != nil {
		return fail("load configuration", err)
	}

	if c.Addr != "" {
		appCfg.Addr = c.Addr
	}

	//nolint:gosec // log path comes from the user
	logFile, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fail("open log file", err)
	}
	defer logFile.Close()

	log := logger.SetupLogger(appCfg, logFile)

	knobCfg, value, err := c.resolve()
	if err != nil {
		return fail("resolve knob configuration", err)
	}

	log.Info("Starting knob",
		"env", appCfg.Env,
		"style", knobCfg.Style,
		"min", knobCfg.Min,
		"max", knobCfg.Max,
		"value", value,
		"addr", appCfg.Addr,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Knob events leave the UI goroutine through the broadcaster: the
	// history ring always listens, websocket clients only with a mirror.
	events := channels.NewBroadcaster[feed.Event]()

	historyC := make(chan feed.Event, eventDepth)
	if err := events.Subscribe(historyC, channels.WithName("history")); err != nil {
		return fail("subscribe history", err)
	}

	var relayC chan feed.Event
	if appCfg.Addr != "" {
		relayC = make(chan feed.Event, eventDepth)
		if err := events.Subscribe(relayC, channels.WithName("websocket")); err != nil {
			return fail("subscribe websocket relay", err)
		}
	}

	input, err := events.Run(ctx, eventDepth)
	if err != nil {
		return fail("start event broadcaster", err)
	}

	store := &feed.Store{}
	publisher := feed.NewPublisher(input, store, log)

	ring := history.NewRing(appCfg.HistorySize)
	ring.Write(value)

	model, err := tui.New(tui.Config{
		Cancel:   cancel,
		Knob:     knobCfg,
		Value:    value,
		Rows:     c.Rows,
		Observer: publisher,
		Sync:     publisher,
		History:  ring,
		Logger:   log,
	})
	if err != nil {
		return fail("create knob", err)
	}

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return history.Follow(gctx, ring, historyC)
	})

	if appCfg.Addr != "" {
		hub := server.NewHub(log)
		srv := server.New(appCfg, log, hub, store, programController{p: p}, server.WithStats(events))

		g.Go(func() error { return hub.Run(gctx) })
		g.Go(func() error { return server.Relay(gctx, hub, relayC, log) })
		g.Go(func() error { return srv.Run(gctx) })
	}

	// Anything failing in the background takes the UI down with it.
	g.Go(func() error {
		<-gctx.Done()
		p.Quit()

		return nil
	})

	g.Go(func() error {
		defer cancel()

		if _, err := p.Run(); err != nil {
			return fmt.Errorf("failed to run TUI: %w", err)
		}

		return nil
	})

	err = g.Wait()
	events.Wait()

	log.Info("Knob stopped", "value", store.Read(), "dropped_events", publisher.Dropped())

	if err != nil {
		return err
	}

	fmt.Printf("%g\n", store.Read())

	return nil
}

// programController hands HTTP changes to the UI goroutine, which owns the
// knob.
type programController struct {
	p *tea.Program
}

func (c programController) SetValue(v float64, animated bool) {
	slog.Debug("Remote value change", "value", v, "animated", animated)
	c.p.Send(knob.SetValueMsg{Value: v, Animated: animated})
}

func (c programController) Reset(animated bool) {
	slog.Debug("Remote reset", "animated", animated)
	c.p.Send(knob.ResetMsg{Animated: animated})
}
