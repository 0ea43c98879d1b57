package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/BeatGlow/eink"
	"github.com/BeatGlow/eink/pixel"
)

func main() {
	deviceFlag := flag.String("device", "/dev/fb0", "Framebuffer device")
	flag.Parse()

	s, err := eink.Open(*deviceFlag, nil)
	if err != nil {
		log.Fatalln("open failed: ", err)
	}
	fmt.Println("connected using", s)

	g := s.Geometry()
	fmt.Printf("visible:        %dx%d\n", g.Xres, g.Yres)
	fmt.Printf("memory:         %dx%d (%d bytes per line, driver reports %d)\n", g.XresMemory, g.YresMemory, g.Stride(), g.LineLength)
	fmt.Printf("bits per pixel: %d\n", g.BitsPerPixel)
	fmt.Printf("grayscale:      %t\n", g.Grayscale)
	for _, c := range []struct {
		name string
		pixel.Channel
	}{
		{"red", g.Red},
		{"green", g.Green},
		{"blue", g.Blue},
	} {
		fmt.Printf("%-15s offset=%d length=%d max=%d\n", c.name+":", c.Offset, c.Length, c.Max())
	}
	fmt.Printf("mapped:         %d bytes\n", len(s.Data()))

	if err = s.Close(); err != nil {
		log.Fatalln("close failed: ", err)
	}
}
