// Package interactive provides the interactive command-line interface
// for camlink-ctl.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/camlink-protocol/camlink-go/pkg/camera"
	"github.com/camlink-protocol/camlink-go/pkg/discovery"
	"github.com/camlink-protocol/camlink-go/pkg/notify"
	"github.com/camlink-protocol/camlink-go/pkg/param"
	"github.com/camlink-protocol/camlink-go/pkg/wire"
)

// Console handles interactive mode for camlink-ctl.
type Console struct {
	ctrl *camera.Control
	reg  param.Registry
	rl   *readline.Instance
}

// New creates a new interactive console around a control.
func New(ctrl *camera.Control, reg param.Registry) (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "camlink> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &Console{ctrl: ctrl, reg: reg, rl: rl}, nil
}

// Stdout returns a writer that properly coordinates with the readline
// input. Use this for event output to avoid mangling the prompt.
func (c *Console) Stdout() io.Writer {
	return c.rl.Stdout()
}

// Sink returns a notify.Sink that prints events on the console.
func (c *Console) Sink() notify.Sink {
	return notify.SinkFunc(func(ev notify.Event) {
		switch ev.Kind {
		case notify.EventRecordTime, notify.EventOrientation:
			// High-rate events drown the prompt; poll them via status.
			return
		}
		fmt.Fprintf(c.Stdout(), "[event] %s %s %v\n", ev.Kind, ev.Name, ev.Value)
	})
}

// Feedback returns a notify.Feedback that prints cues on the console.
func (c *Console) Feedback() notify.Feedback {
	return notify.FeedbackFunc(func(cue notify.FeedbackCue) {
		fmt.Fprintf(c.Stdout(), "[cue] %s\n", cue)
	})
}

// Run starts the interactive command loop.
func (c *Console) Run(ctx context.Context, cancel context.CancelFunc) {
	defer c.rl.Close()

	c.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := c.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(c.rl.Stdout(), "Exiting...")
			cancel()
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			c.printHelp()

		case "status", "st":
			c.cmdStatus()

		case "params", "p":
			c.cmdParams()

		case "set":
			c.cmdSet(args)

		case "photo":
			c.report(c.ctrl.TakePhoto())

		case "video":
			c.cmdVideo(args)

		case "mode":
			c.cmdMode(args)

		case "calibrate", "cal":
			c.report(c.ctrl.Calibrate())

		case "version":
			c.report(c.ctrl.RequestCapabilities())

		case "spot":
			c.cmdSpot(args)

		case "roi":
			c.cmdROI(args)

		case "button":
			c.cmdButton(args)

		case "discover":
			c.cmdDiscover(ctx, args)

		case "refresh":
			c.report(c.ctrl.RequestAllParameters())

		case "exit", "quit", "q":
			cancel()
			return

		default:
			fmt.Fprintf(c.rl.Stdout(), "Unknown command: %s (try 'help')\n", cmd)
		}
	}
}

func (c *Console) report(err error) {
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Error: %v\n", err)
	}
}

func (c *Console) printHelp() {
	fmt.Fprint(c.rl.Stdout(), `Commands:
  status            Show driver state
  params            List parameters and the active editable set
  set <name> <val>  Write a parameter
  photo             Take a photo
  video start|stop|toggle
  mode photo|video  Switch capture mode
  calibrate         Run gimbal calibration
  version           Request the gimbal version
  spot [x y]        Show or move the spot metering point
  roi [center|spot] Show or set the thermal region of interest
  button shutter|video   Simulate a hardware button press
  discover [model]  Find the camera's video stream via mDNS
  refresh           Re-request all parameters
  exit
`)
}

func (c *Console) cmdStatus() {
	w := c.rl.Stdout()
	fmt.Fprintf(w, "variant ready=%v mission=%v\n", c.ctrl.ParametersReady(), c.ctrl.InMissionMode())
	if v := c.ctrl.GimbalVersion(); v != "" {
		fmt.Fprintf(w, "gimbal version %s\n", v)
	}
	if roll, pitch, yaw, ok := c.ctrl.Orientation(); ok {
		fmt.Fprintf(w, "gimbal attitude roll=%.1f pitch=%.1f yaw=%.1f\n", roll, pitch, yaw)
	}
	state, progress := c.ctrl.CalibrationProgress()
	fmt.Fprintf(w, "calibration %s (%d%%)\n", state, progress)
	fmt.Fprintf(w, "mode=%d video=%d record=%s\n",
		c.ctrl.CameraMode(), c.ctrl.VideoStatus(), c.ctrl.RecordTimeString())
	total, free := c.ctrl.Storage()
	fmt.Fprintf(w, "storage %d/%d KiB free\n", free, total)
	if c.ctrl.Capabilities().ThermalImaging() {
		if ts, ok := c.ctrl.ThermalStatus(); ok {
			fmt.Fprintf(w, "thermal center=%.2f min=%.2f max=%.2f\n",
				wire.Degrees(ts.All.CenterVal), wire.Degrees(ts.All.MinVal), wire.Degrees(ts.All.MaxVal))
		}
	}
}

func (c *Console) cmdParams() {
	w := c.rl.Stdout()
	active := make(map[string]bool)
	for _, name := range c.ctrl.ActiveSettings() {
		active[name] = true
	}
	for _, name := range c.reg.Names() {
		p, ok := c.reg.Get(name)
		if !ok {
			continue
		}
		marker := " "
		if active[name] {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %-16s %s\n", marker, name, p.OptionName())
	}
	fmt.Fprintln(w, "(* = editable now)")
}

func (c *Console) cmdSet(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(c.rl.Stdout(), "usage: set <name> <value>")
		return
	}
	name := args[0]
	p, ok := c.reg.Get(name)
	if !ok {
		fmt.Fprintf(c.rl.Stdout(), "unknown parameter %q\n", name)
		return
	}
	value, err := parseValue(p, args[1])
	if err != nil {
		c.report(err)
		return
	}
	if !c.ctrl.ValidateParameter(name, value) {
		fmt.Fprintf(c.rl.Stdout(), "value %v is not on the option grid\n", value)
		return
	}
	c.report(c.ctrl.WriteParameter(name, value))
}

func (c *Console) cmdVideo(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.rl.Stdout(), "usage: video start|stop|toggle")
		return
	}
	switch args[0] {
	case "start":
		c.report(c.ctrl.StartVideo())
	case "stop":
		c.report(c.ctrl.StopVideo())
	case "toggle":
		c.report(c.ctrl.ToggleVideo())
	default:
		fmt.Fprintln(c.rl.Stdout(), "usage: video start|stop|toggle")
	}
}

func (c *Console) cmdMode(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.rl.Stdout(), "usage: mode photo|video")
		return
	}
	switch args[0] {
	case "photo":
		c.report(c.ctrl.SetPhotoMode())
	case "video":
		c.report(c.ctrl.SetVideoMode())
	default:
		fmt.Fprintln(c.rl.Stdout(), "usage: mode photo|video")
	}
}

func (c *Console) cmdSpot(args []string) {
	if len(args) == 0 {
		x, y, err := c.ctrl.SpotArea()
		if err != nil {
			c.report(err)
			return
		}
		fmt.Fprintf(c.rl.Stdout(), "spot at (%d, %d)\n", x, y)
		return
	}
	if len(args) != 2 {
		fmt.Fprintln(c.rl.Stdout(), "usage: spot [x y]")
		return
	}
	x, errX := strconv.Atoi(args[0])
	y, errY := strconv.Atoi(args[1])
	if errX != nil || errY != nil {
		fmt.Fprintln(c.rl.Stdout(), "usage: spot [x y]")
		return
	}
	c.report(c.ctrl.SetSpotArea(x, y))
}

func (c *Console) cmdROI(args []string) {
	if len(args) == 0 {
		v, err := c.ctrl.ROI()
		if err != nil {
			c.report(err)
			return
		}
		name := "center"
		if v == camera.ROISpot {
			name = "spot"
		}
		fmt.Fprintf(c.rl.Stdout(), "roi %s\n", name)
		return
	}
	switch args[0] {
	case "center":
		c.report(c.ctrl.SetROI(camera.ROICenterArea))
	case "spot":
		c.report(c.ctrl.SetROI(camera.ROISpot))
	default:
		fmt.Fprintln(c.rl.Stdout(), "usage: roi [center|spot]")
	}
}

func (c *Console) cmdButton(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.rl.Stdout(), "usage: button shutter|video")
		return
	}
	var btn camera.ButtonID
	switch args[0] {
	case "shutter":
		btn = camera.ButtonShutter
	case "video":
		btn = camera.ButtonVideo
	default:
		fmt.Fprintln(c.rl.Stdout(), "usage: button shutter|video")
		return
	}
	c.ctrl.HandleButton(btn, true)
	c.ctrl.HandleButton(btn, false)
}

func (c *Console) cmdDiscover(ctx context.Context, args []string) {
	model := ""
	if len(args) > 0 {
		model = args[0]
	}
	w := c.rl.Stdout()
	fmt.Fprintln(w, "browsing for stream advertisements...")

	browser := discovery.NewMDNSBrowser(discovery.BrowserConfig{})
	defer browser.Stop()
	svc, err := browser.FindByModel(ctx, model)
	if err != nil {
		c.report(err)
		return
	}
	fmt.Fprintf(w, "found %q (%s %s", svc.InstanceName, svc.Vendor, svc.Model)
	if svc.Serial != "" {
		fmt.Fprintf(w, " sn %s", svc.Serial)
	}
	fmt.Fprintln(w, ")")
	if url := svc.URL(); url != "" {
		fmt.Fprintf(w, "stream %s\n", url)
	}
	if svc.FrameWidth > 0 && svc.FrameHeight > 0 {
		c.ctrl.SetFrameSize(svc.FrameWidth, svc.FrameHeight)
		fmt.Fprintf(w, "spot metering frame %dx%d\n", svc.FrameWidth, svc.FrameHeight)
	}
}

// parseValue converts console input to the parameter's value type.
func parseValue(p *param.Parameter, s string) (any, error) {
	switch p.Type() {
	case param.TypeBool:
		return strconv.ParseBool(s)
	case param.TypeUint32:
		v, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return nil, err
		}
		return uint32(v), nil
	case param.TypeInt32:
		v, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return nil, err
		}
		return int32(v), nil
	case param.TypeFloat64:
		return strconv.ParseFloat(s, 64)
	case param.TypeString:
		return s, nil
	default:
		return nil, fmt.Errorf("cannot set %s parameters from the console", p.Type())
	}
}
