package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/linefractal/api"
	"github.com/matt-g-everett/linefractal/render"
	"github.com/matt-g-everett/linefractal/stream"
)

type app struct {
	Config     stream.Config
	Client     mqtt.Client
	Hub        *api.Hub
	Controller *stream.Controller
}

func newApp() *app {
	a := new(app)
	a.Hub = api.NewHub()
	return a
}

func (a *app) readConfig(configPath string) {
	config, err := stream.ReadConfig(configPath)
	if err != nil {
		log.Fatalf("Config: %v", err)
	}
	a.Config = config
}

func (a *app) connect() stream.Sink {
	options := mqtt.NewClientOptions().
		AddBroker(a.Config.Mqtt.URL).
		SetClientID("linefractal").
		SetUsername(a.Config.Mqtt.Username).
		SetPassword(a.Config.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetOnConnectHandler(func(mqtt.Client) { log.Println("Connected") })
	a.Client = mqtt.NewClient(options)

	if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalf("MQTT: %v", token.Error())
	}
	return stream.NewStreamer(a.Client, a.Config.Mqtt.Topics.Stream, a.Config.Mqtt.Qos)
}

// sinks wraps every output in an AsyncSink so a slow client or a PNG render
// never delays the frame loop.
func (a *app) sinks(ctx context.Context) []stream.Sink {
	sinks := []stream.Sink{a.Hub}
	if a.Config.Mqtt.URL != "" {
		sinks = append(sinks, a.connect())
	}
	if a.Config.Png.Dir != "" {
		p, err := render.NewPNG(a.Config.Png.Dir, a.Config.Png.Every, a.Config.Viewport)
		if err != nil {
			log.Fatalf("PNG: %v", err)
		}
		sinks = append(sinks, p)
	}

	for i, s := range sinks {
		async := stream.NewAsyncSink(s, 2)
		go async.Run(ctx)
		sinks[i] = async
	}
	return sinks
}

func (a *app) run(ctx context.Context, staticDir string) {
	server := api.NewApi(a.Controller, a.Hub, staticDir)
	go func() {
		if err := server.Serve(ctx, a.Config.HTTP.Addr); err != nil {
			log.Printf("HTTP: %v", err)
		}
	}()

	if err := a.Controller.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal(err)
	}
	if a.Client != nil {
		a.Client.Disconnect(250)
	}
	log.Println("Stopped")
}

func main() {
	mqtt.ERROR = log.New(os.Stdout, "", 0)

	// Parse command line parameters
	configPath := flag.String("config", "config.yaml", "YAML config file.")
	staticDir := flag.String("static", "client", "Directory served to browsers.")
	flag.Parse()

	// Read the config
	a := newApp()
	a.readConfig(*configPath)
	log.Printf("Config: variant=%s viewport=%+v frameRate=%v cycle=%v wrap=%s",
		a.Config.Variant, a.Config.Viewport, a.Config.FrameRate, a.Config.Cycle, a.Config.Wrap)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	controller, err := stream.NewController(a.Config, a.sinks(ctx)...)
	if err != nil {
		log.Fatal(err)
	}
	a.Controller = controller
	a.run(ctx, *staticDir)
}
