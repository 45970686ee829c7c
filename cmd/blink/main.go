package main

import (
	"flag"
	"log"

	"nativecore"
)

// ledPin is the pin most boards wire their built-in LED to.
const ledPin = 13

// blink toggles the LED pin every half second and reports each change on
// the Serial console.
type blink struct {
	on bool
}

func (s *blink) Setup(b *nativecore.Board) {
	b.Serial.Begin(115200)
	b.PinMode(ledPin, nativecore.OUTPUT)
	b.Serial.Println("ready")
}

func (s *blink) Loop(b *nativecore.Board) {
	s.on = !s.on
	level := nativecore.LOW
	if s.on {
		level = nativecore.HIGH
	}
	b.DigitalWrite(ledPin, level)
	b.Serial.Print(b.Millis())
	b.Serial.Print(" led=")
	b.Serial.Println(b.DigitalRead(ledPin))
	b.Delay(500)
}

// Entry point for the blink example
func main() {
	configPath := flag.String("config", nativecore.DefaultConfigPath, "board configuration file")
	initConfig := flag.Bool("init-config", false, "write the default configuration to -config and exit")
	flag.Parse()

	if *initConfig {
		if err := nativecore.SaveConfig(*configPath, nativecore.DefaultConfig()); err != nil {
			log.Fatalf("failed to write configuration: %v", err)
		}
		return
	}
	nativecore.Main(*configPath, &blink{})
}
