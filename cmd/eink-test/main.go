package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"time"

	"github.com/golang/freetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"github.com/juju/errors"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/BeatGlow/eink"
	"github.com/BeatGlow/eink/mxcfb"
	"github.com/BeatGlow/eink/pixel"
)

func main() {
	configFlag := flag.String("config", "", "Configuration file (HCL)")
	deviceFlag := flag.String("device", defaultFileConfig.Device, "Framebuffer device")
	waveformFlag := flag.String("waveform", defaultFileConfig.Waveform, "Waveform for full updates")
	fastFlag := flag.String("fast", defaultFileConfig.Fast, "Waveform for partial updates")
	temperatureFlag := flag.Int("temperature", 0, "Panel temperature passed to the driver (0: default)")
	frontlightFlag := flag.String("frontlight", "", "Frontlight GPIO pin")
	textFlag := flag.String("text", defaultFileConfig.Text, "Text to render")
	stepsFlag := flag.Int("steps", 32, "Number of animation steps")
	flag.Parse()

	config := defaultFileConfig
	if *configFlag != "" {
		if err := loadConfig(*configFlag, &config); err != nil {
			fatal(err)
		}
	}
	// Flags given on the command line override the configuration file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "device":
			config.Device = *deviceFlag
		case "waveform":
			config.Waveform = *waveformFlag
		case "fast":
			config.Fast = *fastFlag
		case "temperature":
			config.Temperature = *temperatureFlag
		case "frontlight":
			config.Frontlight = *frontlightFlag
		case "text":
			config.Text = *textFlag
		}
	})

	if _, err := host.Init(); err != nil {
		fatal(err)
	}
	if err := run(config, *stepsFlag); err != nil {
		fatal(err)
	}
}

// run draws the test pattern. The screen is switched off and closed on return,
// also when a step fails.
func run(config fileConfig, steps int) (err error) {
	waveform, err := mxcfb.ParseWaveformMode(config.Waveform)
	if err != nil {
		return err
	}
	fast, err := mxcfb.ParseWaveformMode(config.Fast)
	if err != nil {
		return err
	}
	fmt.Printf("using waveforms: %s (full), %s (partial)\n", waveform, fast)

	screenConfig := &eink.Config{
		Waveform:    waveform,
		Temperature: int32(config.Temperature),
	}
	if config.Frontlight != "" {
		if screenConfig.Frontlight = gpioreg.ByName(config.Frontlight); screenConfig.Frontlight == nil {
			return errors.NotFoundf("frontlight pin %q", config.Frontlight)
		}
	}

	screen, err := eink.Open(config.Device, screenConfig)
	if err != nil {
		return err
	}
	defer func() {
		haltErr := screen.Halt()
		closeErr := screen.Close()
		if err == nil {
			err = haltErr
		}
		if err == nil {
			err = closeErr
		}
	}()

	g := screen.Geometry()
	fmt.Printf("using screen: %s, memory %dx%d, %d bits per pixel\n", screen, g.XresMemory, g.YresMemory, g.BitsPerPixel)

	output, err := screen.Image()
	if err != nil {
		return err
	}
	if err = screen.Show(true); err != nil {
		return err
	}

	// Start from a clean panel.
	output.Fill(color.White)
	if _, err = screen.UpdateFull(mxcfb.WaveformInit, eink.DefaultFullWait); err != nil {
		return err
	}

	r := output.Bounds()
	margin := r.Dx() / 20

	// Gray ramp, one partial update per step.
	ramp := image.Rect(margin, margin, r.Max.X-margin, margin+r.Dy()/8)
	drawRamp(output, ramp, 16)
	if _, err = screen.UpdatePartial(ramp, waveform, true); err != nil {
		return err
	}

	textBox, err := drawText(output, image.Pt(margin, ramp.Max.Y+margin), config.Text, float64(r.Dy())/40)
	if err != nil {
		return err
	}
	if _, err = screen.UpdatePartial(textBox, fast, eink.DefaultPartialWait); err != nil {
		return err
	}

	// Animate a block with fast, non-blocking updates.
	var (
		size   = r.Dx() / 16
		track  = image.Rect(margin, r.Max.Y-margin-size, r.Max.X-margin, r.Max.Y-margin)
		last   eink.Marker
		before = time.Now()
	)
	for step := 0; step < steps; step++ {
		x := track.Min.X + (track.Dx()-size)*step/max(steps-1, 1)
		block := image.Rect(x, track.Min.Y, x+size, track.Max.Y)
		draw.Draw(output, track, image.White, image.Point{}, draw.Src)
		draw.Draw(output, block, image.Black, image.Point{}, draw.Src)
		if last, err = screen.UpdatePartial(track, mxcfb.WaveformA2, eink.DefaultPartialWait); err != nil {
			return err
		}
	}
	if steps > 0 {
		if err = screen.Wait(last); err != nil {
			return err
		}
		fmt.Printf("%d animation steps in %s\n", steps, time.Since(before))
	}

	// Clean up ghosting left by the fast waveforms.
	if err = screen.Refresh(); err != nil {
		return err
	}
	fmt.Println("done")
	return nil
}

func drawRamp(dst pixel.Image, r image.Rectangle, steps int) {
	for i := 0; i < steps; i++ {
		y := uint8(0xff * i / (steps - 1))
		cell := image.Rect(r.Min.X+r.Dx()*i/steps, r.Min.Y, r.Min.X+r.Dx()*(i+1)/steps, r.Max.Y)
		draw.Draw(dst, cell, image.NewUniform(color.Gray{Y: y}), image.Point{}, draw.Src)
	}
}

// drawText renders text with its top left corner at pt and returns the area
// it covers.
func drawText(dst draw.Image, pt image.Point, text string, size float64) (image.Rectangle, error) {
	f, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return image.Rectangle{}, err
	}

	c := freetype.NewContext()
	c.SetDPI(72)
	c.SetFont(f)
	c.SetFontSize(size)
	c.SetClip(dst.Bounds())
	c.SetDst(dst)
	c.SetSrc(image.Black)
	c.SetHinting(font.HintingFull)

	height := c.PointToFixed(size)
	origin := freetype.Pt(pt.X, pt.Y+height.Ceil())
	end, err := c.DrawString(text, origin)
	if err != nil {
		return image.Rectangle{}, err
	}

	// Leave room for descenders.
	box := image.Rect(pt.X, pt.Y, end.X.Ceil(), pt.Y+height.Ceil()*4/3)
	return box.Intersect(dst.Bounds()), nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
