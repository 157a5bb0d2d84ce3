package main

import (
	"context"
	"fmt"
	"image"
	"log"
	"os"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/spf13/cobra"

	"github.com/philipparndt/cadstream/internal/config"
	"github.com/philipparndt/cadstream/internal/ingest"
	"github.com/philipparndt/cadstream/internal/sink"
	_ "github.com/philipparndt/cadstream/pkg/stl"
	"github.com/philipparndt/cadstream/pkg/viewer"
	"github.com/philipparndt/cadstream/version"
)

const (
	rotateStep = 0.1
	zoomStep   = 0.1
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:           "cadstream-view [dir]",
	Short:         "Show the latest model from a watched directory",
	Version:       version.GetFullVersion(),
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default is ./cadstream.yaml)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// View shows the current model in a window. Arrow keys orbit the camera,
// + and - zoom. A new revision resets the camera to frame the new model.
type View struct {
	window fyne.Window
	image  *canvas.Image
	status *widget.Label
	opts   viewer.Options

	mu     sync.Mutex
	camera *viewer.Camera
	snap   ingest.Snapshot
	ready  bool
}

func newView(window fyne.Window, opts viewer.Options) *View {
	img := canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height)))
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(float32(opts.Width), float32(opts.Height)))

	v := &View{
		window: window,
		image:  img,
		status: widget.NewLabel("Waiting for a model..."),
		opts:   opts,
	}

	window.SetContent(container.NewBorder(nil, v.status, nil, nil, img))
	window.Canvas().SetOnTypedKey(v.onKey)
	return v
}

// Show implements sink.Display. It is called from the sink goroutine.
func (v *View) Show(snap ingest.Snapshot, frame image.Image) error {
	v.mu.Lock()
	v.snap = snap
	v.camera = viewer.NewCamera(snap.Model.Bounds())
	v.ready = true
	v.mu.Unlock()

	summary := sink.Summary(snap)
	fyne.Do(func() {
		v.image.Image = frame
		v.image.Refresh()
		v.status.SetText(summary)
		v.window.SetTitle("cadstream - " + snap.Model.Name())
	})
	return nil
}

func (v *View) onKey(ev *fyne.KeyEvent) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.ready {
		return
	}

	cam := v.camera
	switch ev.Name {
	case fyne.KeyLeft:
		cam.Rotate(0, -rotateStep)
	case fyne.KeyRight:
		cam.Rotate(0, rotateStep)
	case fyne.KeyUp:
		cam.Rotate(rotateStep, 0)
	case fyne.KeyDown:
		cam.Rotate(-rotateStep, 0)
	case fyne.KeyPlus, fyne.KeyEqual:
		cam.Zoom(-zoomStep)
	case fyne.KeyMinus:
		cam.Zoom(zoomStep)
	default:
		return
	}

	v.image.Image = viewer.Render(v.snap.Model, cam, v.opts)
	v.image.Refresh()
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.Watch.Dir = args[0]
	}

	a := app.New()
	w := a.NewWindow("cadstream")
	renderOpts := viewer.DefaultOptions(cfg.Sink.Width, cfg.Sink.Height)
	view := newView(w, renderOpts)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	store := ingest.NewStore()
	pipeline := ingest.NewPipeline(store, ingest.Options{SettleDelay: cfg.Watch.SettleDelay})
	s := sink.New(store, sink.Options{
		PollInterval: cfg.Sink.PollInterval,
		Render:       renderOpts,
	}, view)

	go func() {
		if err := s.Run(ctx); err != nil {
			log.Printf("sink stopped: %v", err)
		}
	}()
	go func() {
		err := pipeline.Watch(ctx, cfg.Watch.Dir, ingest.WatchOptions{
			Debounce:     cfg.Watch.Debounce,
			QueueSize:    cfg.Watch.QueueSize,
			LoadExisting: cfg.Watch.LoadExisting,
		})
		if err != nil {
			log.Printf("watch stopped: %v", err)
			fyne.Do(func() { view.status.SetText(fmt.Sprintf("Watch stopped: %v", err)) })
		}
	}()

	w.Resize(fyne.NewSize(float32(cfg.Sink.Width), float32(cfg.Sink.Height)+40))
	w.ShowAndRun()
	return nil
}
