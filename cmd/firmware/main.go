//go:build tinygo

// Command firmware runs the cube on the microcontroller: 24 finger rings
// behind a shift register, 54 ws2812 LEDs in one chain.
package main

import (
	"context"
	"machine"

	"tinygo.org/x/drivers/ws2812"

	"github.com/SeamusWaldron/touchcube"
	"github.com/SeamusWaldron/touchcube/internal/display"
	"github.com/SeamusWaldron/touchcube/internal/rings"
)

const (
	ledPin    = machine.GPIO3
	serialPin = machine.GPIO8
	shiftPin  = machine.GPIO9
	latchPin  = machine.GPIO10
	sensePin  = machine.ADC1
)

// shiftBus drives a 74HC595-style register and samples through the ADC.
type shiftBus struct {
	ser, srck, rck machine.Pin
	adc            machine.ADC
}

func newShiftBus() *shiftBus {
	b := &shiftBus{
		ser:  serialPin,
		srck: shiftPin,
		rck:  latchPin,
		adc:  machine.ADC{Pin: sensePin},
	}
	for _, p := range []machine.Pin{b.ser, b.srck, b.rck} {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		p.Low()
	}
	machine.InitADC()
	b.adc.Configure(machine.ADCConfig{})
	return b
}

func (b *shiftBus) Shift(in bool) {
	b.ser.Set(in)

	b.srck.High()
	b.srck.Low()

	b.rck.High()
	b.rck.Low()
}

// Sample returns the top eight bits of the conversion.
func (b *shiftBus) Sample() uint8 {
	return uint8(b.adc.Get() >> 8)
}

func main() {
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	strip := display.NewStrip(ws2812.New(ledPin))

	scanner := rings.New(newShiftBus())

	game, err := touchcube.NewGame()
	if err != nil {
		println("touchcube:", err.Error())
		return
	}

	for {
		if err := game.Run(context.Background(), scanner, strip); err != nil {
			println("touchcube:", err.Error())
		}
		scanner.Reset()
	}
}
