// Package touchcube is the control core of a touch-operated Rubik's cube
// replica: 54 LEDs show the facelets and 24 finger rings on the edges of the
// cube are read as gestures.
//
// # Features
//
//   - Debounced gesture detection from raw ring readings
//   - Face turns with a stepped rotation animation
//   - Undo stack and seeded, reproducible scrambles
//   - Victory animation once the cube is solved
//   - Runs on a microcontroller or fully simulated on a desktop
//
// # Quick Start
//
// Run a game against any sensor reader and display:
//
//	game, err := touchcube.NewGame(
//	    touchcube.WithSeed(42),
//	    touchcube.WithThreshold(5),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	game.OnPhaseChange(func(p touchcube.Phase) {
//	    fmt.Println("Phase:", p)
//	})
//
//	// Run returns nil once reader reports io.EOF.
//	err = game.Run(ctx, reader, display)
//
// # Standalone Controller
//
// The Controller can be driven directly, one read cycle at a time:
//
//	ctl, _ := touchcube.NewController()
//
//	// Turn faces without animating
//	ctl.Apply(touchcube.R, touchcube.U, touchcube.RPrime, touchcube.UPrime)
//
//	// Or feed readings and step the animation yourself
//	out := ctl.Cycle(readings)
//	for delay := ctl.Next(); delay > 0; delay = ctl.Next() {
//	    show(ctl.Facelets())
//	    time.Sleep(delay)
//	}
//
// # Gestures
//
// A Calibration maps each gesture to the rings that must be touched
// together. A gesture commits once all of its rings have read touched for
// the threshold number of consecutive cycles:
//
//   - Face turns: one gesture per face and direction, 12 in all
//   - ActionUndo: reverses the last turn
//   - ActionResetEasy, ActionResetNormal: start over with a short or long
//     scramble
package touchcube
