// Package main is a terminal demo for the filter tag bar.
//
// It wires a bus, a tag bar, and a few simulated filter inputs together
// so the event flow can be exercised interactively: number keys toggle
// sample filters, clicking a chip removes it, and "Clear all" empties
// the bar.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/dshills/filterbar/internal/config"
	"github.com/dshills/filterbar/internal/event"
	"github.com/dshills/filterbar/internal/i18n"
	"github.com/dshills/filterbar/internal/log"
	"github.com/dshills/filterbar/internal/tagbar"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

type options struct {
	ConfigPath string
	Locale     string
	LogLevel   string
}

func run() int {
	opts := parseFlags()

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: filterbar needs an interactive terminal")
		return 1
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load settings: %v\n", err)
		return 1
	}
	if opts.Locale != "" {
		cfg.Locale = opts.Locale
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	log.Configure(log.Config{Level: cfg.LogLevel})
	logger := log.WithComponent("main")

	bus := event.NewBus(event.WithLogger(log.WithComponent("bus")))
	defer bus.Clear()

	printer := i18n.NewCatalog().Printer(cfg.Locale)

	bar := tagbar.New(
		tagbar.WithTheme(tagbar.NewTheme(cfg.ThemeAccent)),
		tagbar.WithPrinter(printer),
		tagbar.WithLogger(log.WithComponent("tagbar")),
		tagbar.WithOnRemove(func(key, value string) {
			logger.Info().Str("key", key).Str("value", value).Msg("tag removed")
		}),
		tagbar.WithOnClear(func() {
			logger.Info().Msg("all tags cleared")
		}),
	)
	if err := bar.Attach(bus); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to attach tag bar: %v\n", err)
		return 1
	}
	defer bar.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to init screen: %v\n", err)
		return 1
	}
	defer screen.Fini()
	screen.EnableMouse()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		screen.PostEventWait(tcell.NewEventInterrupt(nil))
	}()

	logger.Info().Str("version", version).Str("locale", printer.Locale().String()).Msg("filterbar demo started")

	if err := eventLoop(screen, bus, bar); err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// sampleFilters are the selections the number keys toggle.
var sampleFilters = []struct {
	key    rune
	filter string
	value  string
}{
	{'1', "category", "electronics"},
	{'2', "category", "books"},
	{'3', "brand", "acme"},
	{'4', "price", "under-50"},
}

func eventLoop(screen tcell.Screen, bus event.Bus, bar *tagbar.Bar) error {
	ctx := context.Background()

	// Simulated sibling widgets: a typed publisher and a legacy
	// map-payload adapter, both feeding filter.changed.
	input := event.NewPublisher(bus, "input.demo")
	legacy := event.NewBusAdapter(bus, "input.legacy")
	defer legacy.Close()

	selected := map[string][]string{}

	for {
		draw(screen, bar)

		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()

		case *tcell.EventInterrupt:
			return nil

		case *tcell.EventMouse:
			if ev.Buttons()&tcell.Button1 != 0 {
				x, y := ev.Position()
				bar.HandleMouse(ctx, x, y)
			}

		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape || ev.Rune() == 'q':
				return nil

			case ev.Key() == tcell.KeyCtrlC:
				return nil

			case ev.Rune() == 'c':
				if err := bar.ClearAll(ctx); err != nil {
					return err
				}
				selected = map[string][]string{}

			case ev.Rune() == 'l':
				// Exercise the legacy adapter path.
				legacy.Publish(string(tagbar.TopicChanged), map[string]any{
					"key":    "source",
					"values": []any{"legacy-adapter"},
				})

			default:
				for _, sf := range sampleFilters {
					if ev.Rune() != sf.key {
						continue
					}
					selected[sf.filter] = toggle(selected[sf.filter], sf.value)
					err := input.PublishTyped(ctx, tagbar.TopicChanged, tagbar.ChangedPayload{
						Source: "input.demo",
						Key:    sf.filter,
						Values: selected[sf.filter],
					})
					if err != nil {
						return err
					}
					break
				}
			}
		}
	}
}

// toggle adds the value to the slice or removes it if present.
func toggle(values []string, value string) []string {
	for i, v := range values {
		if v == value {
			return append(values[:i], values[i+1:]...)
		}
	}
	return append(values, value)
}

func draw(screen tcell.Screen, bar *tagbar.Bar) {
	screen.Clear()
	width, _ := screen.Size()

	help := "1-4: toggle filters  l: legacy event  c: clear  click: remove chip  q: quit"
	for i, r := range help {
		if i >= width {
			break
		}
		screen.SetContent(i, 0, r, nil, tcell.StyleDefault.Dim(true))
	}

	bar.Render(screen, 0, 2, width)
	screen.Show()
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to settings file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to settings file (shorthand)")
	flag.StringVar(&opts.Locale, "locale", "", "Locale override (e.g. en, de, fr)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Filterbar - filter tag bar demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: filterbar [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  filterbar                   Run with default settings\n")
		fmt.Fprintf(os.Stderr, "  filterbar -locale de        Run with German labels\n")
		fmt.Fprintf(os.Stderr, "  filterbar -c settings.json  Run with a settings file\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Filterbar %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	return opts
}
