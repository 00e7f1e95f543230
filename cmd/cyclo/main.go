// Command cyclo is the module's CLI driver (§6.4): it takes one or
// more sample-catalog roots as positional arguments, loads them,
// installs a hard-coded example pattern on channel "d1", and runs the
// scheduler until interrupted. Argument parsing and top-level wiring
// here are explicitly non-core (§1) — all pattern-calculus logic lives
// in internal/pattern and internal/notation, which this file only
// calls into.
package main

import (
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/schollz/cyclo/internal/catalog"
	"github.com/schollz/cyclo/internal/diag"
	"github.com/schollz/cyclo/internal/notation"
	"github.com/schollz/cyclo/internal/pattern"
	"github.com/schollz/cyclo/internal/scheduler"
	"github.com/schollz/cyclo/internal/sink"
	"github.com/schollz/cyclo/internal/statusui"
)

// examplePattern is the hard-coded pattern §6.4 requires on startup.
const examplePattern = "bd cp"

func main() {
	var oscPort int
	var oscHost string
	var debugLog string

	root := &cobra.Command{
		Use:   "cyclo <catalog-root> [more-catalog-roots...]",
		Short: "run the cyclo pattern engine against one or more sample catalogs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args, oscHost, oscPort, debugLog)
		},
	}
	root.Flags().IntVar(&oscPort, "osc-port", 57120, "OSC port the sink sends /sampler messages to")
	root.Flags().StringVar(&oscHost, "osc-host", "localhost", "OSC host the sink sends /sampler messages to")
	root.Flags().StringVar(&debugLog, "debug", "", "if set, write debug logs to this file; empty disables logging")

	if err := root.Execute(); err != nil {
		log.Printf("fatal: %v", err)
		os.Exit(1)
	}
}

func run(roots []string, oscHost string, oscPort int, debugLog string) error {
	setupLogging(debugLog)

	var cat *catalog.Catalog
	loading := statusui.NewLoadingModel(func() error {
		c, err := catalog.Load(roots...)
		if err != nil {
			return err
		}
		cat = c
		return nil
	})

	p := tea.NewProgram(loading)
	final, err := p.Run()
	if err != nil {
		return err
	}
	if lm, ok := final.(statusui.LoadingModel); ok && lm.Err() != nil {
		return lm.Err()
	}
	log.Printf("loaded sample sets: %v", cat.Names())
	for _, name := range cat.Names() {
		log.Printf("  %s: %d variation(s)", name, cat.VariationCount(name))
	}

	s := sink.NewOSC(oscHost, oscPort)
	player := scheduler.New(s)
	player.SetCatalog(cat)

	examplePat, err := notation.Parse(examplePattern)
	if err != nil {
		return err
	}
	player.SetPattern("d1", pattern.Sound(examplePat))
	player.Start()
	defer player.Stop()

	if debugLog != "" {
		snap := diag.Snapshot{
			SampleSets: cat.Names(),
			Channels:   map[string]string{"d1": examplePattern},
			OSCHost:    oscHost,
			OSCPort:    oscPort,
		}
		if err := diag.WriteFile(debugLog+".json", snap); err != nil {
			log.Printf("could not write startup snapshot: %v", err)
		}
	}

	log.Printf("cyclo running; channel d1 playing %q; OSC sink -> %s:%d", examplePattern, oscHost, oscPort)
	waitForSignal()
	log.Printf("shutting down")
	return nil
}

func setupLogging(debugLog string) {
	if debugLog == "" {
		log.SetOutput(io.Discard)
		return
	}
	f, err := os.Create(debugLog)
	if err != nil {
		log.Printf("could not open debug log %s: %v", debugLog, err)
		return
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}

// waitForSignal blocks until SIGINT, SIGTERM, or SIGQUIT — the same
// set the teacher's setupCleanupOnExit watches for.
func waitForSignal() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	<-c
}
