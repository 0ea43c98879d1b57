package main

import (
	"os"

	"github.com/hashicorp/hcl"
	"github.com/juju/errors"
)

// fileConfig is the optional configuration file, for example:
//
//	device      = "/dev/fb0"
//	waveform    = "gc16"
//	fast        = "a2"
//	temperature = 24
//	frontlight  = "GPIO12"
//	text        = "Hello, paper"
type fileConfig struct {
	Device      string `hcl:"device"`
	Waveform    string `hcl:"waveform"`
	Fast        string `hcl:"fast"`
	Temperature int    `hcl:"temperature"`
	Frontlight  string `hcl:"frontlight"`
	Text        string `hcl:"text"`
}

var defaultFileConfig = fileConfig{
	Device:   "/dev/fb0",
	Waveform: "gc16",
	Fast:     "du",
	Text:     "The quick brown fox jumps over the lazy dog",
}

func loadConfig(name string, config *fileConfig) error {
	b, err := os.ReadFile(name)
	if err != nil {
		return errors.Annotatef(err, "config %s", name)
	}
	if err = hcl.Unmarshal(b, config); err != nil {
		return errors.Annotatef(err, "config %s", name)
	}
	return nil
}
