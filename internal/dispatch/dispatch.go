// ABOUTME: Sends play and stop control messages to the SuperCollider language over OSC/UDP.
// ABOUTME: Fire-and-forget: nothing waits for a reply and nothing is retried.

package dispatch

import (
	"fmt"
	"log/slog"
	"net"
	"strconv"

	"github.com/harper/scsnip/internal/apperror"
	"github.com/hypebeast/go-osc/osc"
)

const (
	DefaultHost = "127.0.0.1"
	DefaultPort = 57120

	PlayAddress = "/snippet/play"
	StopAddress = "/snippet/stop"
)

// Sender is the part of the dispatcher shells depend on.
type Sender interface {
	Play(code string) error
	Stop() error
}

type Config struct {
	Host string
	Port int
}

func DefaultConfig() Config {
	return Config{Host: DefaultHost, Port: DefaultPort}
}

func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c Config) Validate() error {
	if c.Host == "" {
		return apperror.InvalidArgument("dispatch config", "host is required")
	}
	if c.Port < 1 || c.Port > 65535 {
		return apperror.InvalidArgument("dispatch config", fmt.Sprintf("port %d out of range", c.Port))
	}
	return nil
}

type Dispatcher struct {
	cfg    Config
	client *osc.Client
	logger *slog.Logger
}

// New returns a dispatcher for cfg. No socket is opened until a message is
// sent; each send dials, writes one datagram, and closes.
func New(cfg Config, logger *slog.Logger) (*Dispatcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Dispatcher{
		cfg:    cfg,
		client: osc.NewClient(cfg.Host, cfg.Port),
		logger: logger,
	}, nil
}

func (d *Dispatcher) Config() Config {
	return d.cfg
}

// Play sends already-wrapped code to /snippet/play.
func (d *Dispatcher) Play(code string) error {
	return d.send(PlayMessage(code))
}

// Stop sends /snippet/stop with no arguments.
func (d *Dispatcher) Stop() error {
	return d.send(StopMessage())
}

func (d *Dispatcher) send(msg *osc.Message) error {
	if err := d.client.Send(msg); err != nil {
		return apperror.Network("send "+msg.Address, d.cfg.Addr(), err)
	}
	d.logger.Debug("sent osc message", "address", msg.Address, "to", d.cfg.Addr())
	return nil
}

func PlayMessage(code string) *osc.Message {
	return osc.NewMessage(PlayAddress, code)
}

func StopMessage() *osc.Message {
	return osc.NewMessage(StopAddress)
}

// Encode returns the datagram bytes for msg.
func Encode(msg *osc.Message) ([]byte, error) {
	data, err := msg.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", msg.Address, err)
	}
	return data, nil
}
