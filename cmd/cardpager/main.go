// SPDX-License-Identifier: Unlicense OR MIT

package main

// A single screen of cards that page horizontally. Drag or fling the
// cards; they settle with one card centered.

import (
	"flag"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/unit"

	"github.com/pkg/profile"

	"gioui.org/cardpager/config"
)

var (
	configPath = flag.String("config", "", "HJSON configuration file")
	cards      = flag.Int("cards", 0, "number of cards (overrides config)")
	margin     = flag.Float64("margin", 0, "distance in dp between the screen edges and a card (overrides config)")
	spacing    = flag.Float64("spacing", 0, "gap in dp between cards (overrides config)")
	threshold  = flag.Float64("threshold", 0, "release velocity in dp/s below which the nearest card wins (overrides config)")
	statePath  = flag.String("state", "", "SQLite file remembering the last card (overrides config)")
	cpuProfile = flag.Bool("profile", false, "write a CPU profile to the working directory")
	verbose    = flag.Bool("v", false, "log every snap")
)

func main() {
	flag.Parse()
	conf, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}
	var prof interface{ Stop() }
	if *cpuProfile {
		prof = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	}
	go func() {
		w := new(app.Window)
		w.Option(
			app.Title("Card pager"),
			app.Size(unit.Dp(375), unit.Dp(667)),
		)
		err := run(w, conf)
		if prof != nil {
			prof.Stop()
		}
		if err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

// loadConfig loads the configuration file and environment, then
// applies the flags set on the command line.
func loadConfig() (config.Config, error) {
	conf, err := config.Load(*configPath)
	if err != nil {
		return config.Config{}, err
	}
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	applyFlags(&conf, set)
	return conf, conf.Validate()
}

func applyFlags(conf *config.Config, set map[string]bool) {
	if set["cards"] {
		conf.Cards = *cards
	}
	if set["margin"] {
		conf.Margin = float32(*margin)
	}
	if set["spacing"] {
		conf.Spacing = float32(*spacing)
	}
	if set["threshold"] {
		conf.Threshold = float32(*threshold)
	}
	if set["state"] {
		conf.StatePath = *statePath
	}
}
