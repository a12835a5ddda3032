// Package viewer runs the interactive map window and one-shot snapshot
// renders.
package viewer

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/geoline/internal/config"
	"github.com/Faultbox/geoline/internal/engine/debug"
	"github.com/Faultbox/geoline/internal/engine/framebuffer"
	"github.com/Faultbox/geoline/internal/engine/input"
	"github.com/Faultbox/geoline/internal/engine/renderer"
	"github.com/Faultbox/geoline/internal/engine/snapshot"
	"github.com/Faultbox/geoline/internal/engine/window"
	"github.com/Faultbox/geoline/internal/layers"
	"github.com/Faultbox/geoline/internal/logger"
	"github.com/Faultbox/geoline/internal/mapview"
	"github.com/Faultbox/geoline/pkg/geo"
)

// Options controls how the window is opened.
type Options struct {
	Title string
	// Hidden opens an invisible window for RenderOnce.
	Hidden bool
}

// Viewer owns the window, GL renderer and map.
type Viewer struct {
	cfg      *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	m        *mapview.Map
	capture  *snapshot.Capture
	log      *zap.Logger
	lastErr  string

	boundsOverlay *debug.Overlay
	gridOverlay   *debug.Overlay
}

// New opens the window and creates the renderer and an empty map.
func New(cfg *config.Config, opts Options) (*Viewer, error) {
	bg, err := geo.ParseColor(cfg.Graphics.Background)
	if err != nil {
		return nil, fmt.Errorf("graphics background: %w", err)
	}

	v := &Viewer{
		cfg:     cfg,
		capture: snapshot.New(cfg.Snapshot.Dir, cfg.Snapshot.Prefix),
		log:     logger.Named("viewer"),

		boundsOverlay: debug.NewOverlay(geo.Color{R: 1, G: 0.3, B: 0.3}),
		gridOverlay:   debug.NewOverlay(geo.Color{R: 0.35, G: 0.35, B: 0.4}),
	}

	v.window, err = window.New(window.Config{
		Title:      opts.Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen && !opts.Hidden,
		VSync:      cfg.Graphics.VSync,
		Hidden:     opts.Hidden,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer must come after the window: it needs the GL context.
	dw, dh := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{Width: dw, Height: dh, Background: bg})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.m, err = layers.NewMap(cfg, dw, dh)
	if err != nil {
		v.Close()
		return nil, err
	}
	v.input = input.New()
	return v, nil
}

// Map returns the viewer's map.
func (v *Viewer) Map() *mapview.Map { return v.m }

// Close releases GL resources and the window.
func (v *Viewer) Close() {
	logger.Debug("closing viewer")
	if v.m != nil {
		for len(v.m.Layers()) > 0 {
			v.m.DeleteLayer(v.m.Layers()[0])
		}
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

// Run shows the map until the window closes or Escape is pressed. Drag
// pans, the wheel zooms about the cursor, F fits the data, B and G toggle
// the bounds and graticule overlays and F12 writes a snapshot.
func (v *Viewer) Run() error {
	v.running = true
	if _, err := v.m.FitToData(); err != nil {
		v.reportUpdate(err)
	}

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()
	v.log.Info("starting viewer loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()

		v.reportUpdate(v.m.Update())
		v.renderer.Render(v.m.Renderer().ContextRenderer())
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frameCount), zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
	return nil
}

func (v *Viewer) handleEvents() {
	ww, _ := v.window.Size()
	dw, dh := v.window.DrawableSize()
	scale := float32(1)
	if ww > 0 {
		scale = float32(dw) / float32(ww)
	}

	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			v.renderer.Resize(dw, dh)
			v.m.Resize(dw, dh)
		case input.EventDrag:
			v.m.Camera().HandleDrag(event.DeltaX*scale, event.DeltaY*scale)
		case input.EventMouseWheel:
			px := int(float32(event.MouseX) * scale)
			py := int(float32(event.MouseY) * scale)
			v.m.Camera().ZoomAt(event.DeltaY, px, py)
		case input.EventKeyDown:
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				v.running = false
			case sdl.SCANCODE_F:
				if _, err := v.m.FitToData(); err != nil {
					v.reportUpdate(err)
				}
			case sdl.SCANCODE_B:
				v.toggleOverlay(v.boundsOverlay, "bounds")
			case sdl.SCANCODE_G:
				v.toggleOverlay(v.gridOverlay, "graticule")
			case sdl.SCANCODE_F12:
				v.snapshotWindow(dw, dh)
			}
		}
	}
}

func (v *Viewer) toggleOverlay(o *debug.Overlay, name string) {
	ctx := v.m.Renderer().ContextRenderer()
	if !ctx.HasActor(o.Actor()) {
		b, ok := v.m.DataBounds()
		if !ok {
			return
		}
		if o == v.gridOverlay {
			o.SetGraticule(b, 10)
		} else {
			o.SetBounds(b)
		}
	}
	shown := o.Toggle(ctx)
	v.log.Debug("overlay toggled", zap.String("overlay", name), zap.Bool("shown", shown))
}

// reportUpdate logs feature update errors once per distinct error.
func (v *Viewer) reportUpdate(err error) {
	if err == nil {
		v.lastErr = ""
		return
	}
	if msg := err.Error(); msg != v.lastErr {
		v.lastErr = msg
		v.log.Warn("feature update failed", zap.Error(err))
	}
}

func (v *Viewer) snapshotWindow(width, height int) {
	fb, err := framebuffer.New(int32(width), int32(height))
	if err != nil {
		v.log.Error("snapshot failed", zap.Error(err))
		return
	}
	defer fb.Destroy()

	path, err := v.renderTo(fb, "")
	if err != nil {
		v.log.Error("snapshot failed", zap.Error(err))
		return
	}
	v.log.Info("snapshot saved", zap.String("path", path))
}

// RenderOnce fits the camera to the data, renders one frame offscreen at
// the configured size and writes it as PNG to path, or to a generated
// name in the snapshot directory when path is empty.
func (v *Viewer) RenderOnce(path string) (string, error) {
	width, height := v.cfg.Graphics.Width, v.cfg.Graphics.Height
	v.m.Resize(width, height)
	if _, err := v.m.FitToData(); err != nil {
		return "", err
	}

	fb, err := framebuffer.New(int32(width), int32(height))
	if err != nil {
		return "", err
	}
	defer fb.Destroy()
	return v.renderTo(fb, path)
}

func (v *Viewer) renderTo(fb *framebuffer.Framebuffer, path string) (string, error) {
	restore := fb.Bind()
	v.renderer.Render(v.m.Renderer().ContextRenderer())
	pixels := fb.ReadPixels()
	restore()

	width, height := fb.Size()
	img, err := snapshot.FromPixels(pixels, width, height)
	if err != nil {
		return "", err
	}
	return v.capture.Save(img, path)
}
