// Command camlink-ctl is an interactive camera control console.
//
// It drives the camlink camera state machine against a simulated
// camera device, which makes it useful for exploring the protocol and
// for exercising parameter definitions without hardware.
//
// Usage:
//
//	camlink-ctl [flags]
//
// Flags:
//
//	-model string       Camera model name (default taken from the definition)
//	-definition string  Parameter definition YAML (default: built-in for the model)
//	-advertise          Announce the simulated stream over mDNS
//	-protocol-log string  Write protocol events to a .clog file
//	-mqtt string        Publish events to an MQTT broker ("tcp://host:1883")
//	-mqtt-prefix string Topic prefix for published events (default "camlink")
//	-v                  Verbose protocol logging to stderr
//
// Examples:
//
//	# Drive the default E90 camera
//	camlink-ctl
//
//	# Thermal variant with protocol capture
//	camlink-ctl -model CGO-ET -protocol-log session.clog
//
//	# Publish telemetry to a local broker
//	camlink-ctl -mqtt tcp://localhost:1883
package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/camlink-protocol/camlink-go/cmd/camlink-ctl/interactive"
	"github.com/camlink-protocol/camlink-go/cmd/camlink-ctl/sim"
	"github.com/camlink-protocol/camlink-go/pkg/bridge"
	"github.com/camlink-protocol/camlink-go/pkg/camera"
	"github.com/camlink-protocol/camlink-go/pkg/camlog"
	"github.com/camlink-protocol/camlink-go/pkg/discovery"
	"github.com/camlink-protocol/camlink-go/pkg/notify"
	"github.com/camlink-protocol/camlink-go/pkg/param"
	"github.com/camlink-protocol/camlink-go/pkg/wire"
)

//go:embed definitions/e90.yaml
var e90Definition []byte

//go:embed definitions/et.yaml
var etDefinition []byte

// simVersionWord is the firmware version the simulated gimbal reports.
const simVersionWord = uint32(1<<24 | 25<<16 | 3<<8)

// Config holds the console configuration.
type Config struct {
	Model          string
	DefinitionFile string
	ProtocolLog    string
	MQTTBroker     string
	MQTTPrefix     string
	Advertise      bool
	Verbose        bool
}

var config Config

func init() {
	flag.StringVar(&config.Model, "model", "", "Camera model name (default taken from the definition)")
	flag.StringVar(&config.DefinitionFile, "definition", "", "Parameter definition YAML file")
	flag.StringVar(&config.ProtocolLog, "protocol-log", "", "Write protocol events to a .clog file")
	flag.StringVar(&config.MQTTBroker, "mqtt", "", "Publish events to an MQTT broker (tcp://host:1883)")
	flag.StringVar(&config.MQTTPrefix, "mqtt-prefix", "camlink", "Topic prefix for published events")
	flag.BoolVar(&config.Advertise, "advertise", false, "Announce the simulated stream over mDNS")
	flag.BoolVar(&config.Verbose, "v", false, "Verbose protocol logging to stderr")
}

func main() {
	flag.Parse()
	log.SetFlags(log.Ltime | log.Lmicroseconds)

	def, err := loadDefinition()
	if err != nil {
		log.Fatalf("Failed to load parameter definition: %v", err)
	}
	if config.Model == "" {
		config.Model = def.Model
	}
	if config.Model == "" {
		config.Model = "E90"
	}

	reg, err := def.BuildRegistry()
	if err != nil {
		log.Fatalf("Failed to build parameter registry: %v", err)
	}

	logger, closeLogs, err := buildLogger()
	if err != nil {
		log.Fatalf("Failed to set up protocol logging: %v", err)
	}
	defer closeLogs()

	events := notify.NewDispatcher()

	// The console is built after the control but receives its cues; the
	// indirection lets the control reference it before it exists.
	var console *interactive.Console

	cam := sim.New(def, simVersionWord)
	ctrl := camera.New(camera.Config{
		ModelName: config.Model,
		Registry:  reg,
		Link:      cam,
		Sink:      events,
		Feedback: notify.FeedbackFunc(func(cue notify.FeedbackCue) {
			if console != nil {
				console.Feedback().Play(cue)
			}
		}),
		Logger: logger,
	})
	defer ctrl.Close()

	console, err = interactive.New(ctrl, reg)
	if err != nil {
		log.Fatalf("Failed to start console: %v", err)
	}
	events.Subscribe(console.Sink())

	if config.MQTTBroker != "" {
		br, err := bridge.New(bridge.Config{
			BrokerURL:   config.MQTTBroker,
			TopicPrefix: config.MQTTPrefix,
		})
		if err != nil {
			log.Fatalf("Failed to connect to MQTT broker: %v", err)
		}
		defer br.Close()
		events.Subscribe(br)
		log.Printf("Publishing events to %s under %q", config.MQTTBroker, config.MQTTPrefix)
	}

	if config.Advertise {
		adv := discovery.NewMDNSAdvertiser(discovery.AdvertiserConfig{})
		info := &discovery.StreamInfo{
			Vendor:      "CamLink",
			Model:       config.Model,
			Serial:      "SIM0001",
			Path:        "/live",
			FrameWidth:  1920,
			FrameHeight: 1080,
		}
		if err := adv.Advertise(info); err != nil {
			log.Printf("Warning: mDNS advertisement failed: %v", err)
		} else {
			defer adv.Stop()
			log.Printf("Advertising %q over mDNS", info.Model)
		}
	}

	cam.OnMessage(func(env *wire.Envelope) {
		if err := ctrl.HandleMessage(env); err != nil {
			log.Printf("Dropped message: %v", err)
		}
	})

	log.Printf("camlink-ctl, model %s (%d parameters)", config.Model, len(reg.Names()))

	// Prime the connection the way a real link bring-up would.
	if err := ctrl.RequestCapabilities(); err != nil {
		log.Printf("Warning: capability request failed: %v", err)
	}
	if err := ctrl.RequestAllParameters(); err != nil {
		log.Printf("Warning: parameter request failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	console.Run(ctx, cancel)
}

// loadDefinition resolves the parameter definition from the -definition
// flag or the built-in defaults.
func loadDefinition() (*param.Definition, error) {
	if config.DefinitionFile != "" {
		data, err := os.ReadFile(config.DefinitionFile)
		if err != nil {
			return nil, err
		}
		return param.ParseDefinition(data)
	}
	if strings.Contains(config.Model, "ET") {
		return param.ParseDefinition(etDefinition)
	}
	return param.ParseDefinition(e90Definition)
}

// buildLogger assembles the protocol logger from the flags.
func buildLogger() (camlog.Logger, func(), error) {
	var loggers []camlog.Logger
	var closers []func() error

	if config.Verbose {
		h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		loggers = append(loggers, camlog.NewSlogAdapter(slog.New(h)))
	}
	if config.ProtocolLog != "" {
		fl, err := camlog.NewFileLogger(config.ProtocolLog)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open %s: %w", config.ProtocolLog, err)
		}
		loggers = append(loggers, fl)
		closers = append(closers, fl.Close)
	}

	closeAll := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				log.Printf("Error closing protocol log: %v", err)
			}
		}
	}

	switch len(loggers) {
	case 0:
		return camlog.Noop{}, closeAll, nil
	case 1:
		return loggers[0], closeAll, nil
	default:
		return camlog.NewMultiLogger(loggers...), closeAll, nil
	}
}
