package main

import (
	"flag"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/horde/arena"
	"github.com/milk9111/horde/prefabs"
	"github.com/milk9111/horde/upgrade"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode")
	seed := flag.Int64("seed", 0, "random seed for spawns and offers (0 uses the clock)")
	watch := flag.Bool("watch", false, "reload prefabs from disk when they change")
	headless := flag.Int("headless", 0, "run this many ticks without a window and print the director status")
	encounter := flag.String("encounter", "encounter.yaml", "encounter file in prefabs/")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	log.Printf("seed %d", *seed)
	rng := rand.New(rand.NewSource(*seed))

	if *headless > 0 {
		runHeadless(*encounter, *headless, rng)
		return
	}

	var watcher *prefabs.Watcher
	if *watch {
		prefabs.SetDir("prefabs")
		w, err := prefabs.NewWatcher(prefabs.Dir())
		if err != nil {
			log.Printf("watch disabled: %v", err)
		} else {
			watcher = w
			defer watcher.Close()
		}
	}

	game, err := NewGame(*encounter, rng, watcher, *debug)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle("horde")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

// runHeadless steps the encounter with a stationary, always-swinging player
// that takes the first offer at every gate.
func runHeadless(encounter string, ticks int, rng *rand.Rand) {
	a, err := arena.New(encounter, rng)
	if err != nil {
		log.Fatal(err)
	}
	if err := a.Director.Start(); err != nil {
		log.Fatal(err)
	}
	a.Gate.Resolved.Subscribe(func(o upgrade.Offer) {
		log.Printf("chose %s", o.Label)
	})

	for i := 0; i < ticks && !a.GameOver(); i++ {
		if in := a.Input(); in != nil {
			in.Attack = true
		}
		if a.Gate.IsPending() {
			if _, err := a.Gate.Confirm(); err != nil {
				log.Printf("confirm: %v", err)
			}
		}
		a.Tick()
	}

	st := a.Director.Status()
	log.Printf("after %d ticks (%s): state %s, wave %d, spawned %d/%d, active %d, game over %t",
		ticks, a.World.Now(), st.State, st.Wave.Index, st.Wave.Spawned, st.Wave.Quota, st.Wave.Active, a.GameOver())
}
