package source

import (
	"github.com/godbus/dbus/v5"
)

// DBusClient defines the D-Bus operations the MPRIS source needs.
// This abstraction allows us to mock D-Bus interactions in tests.
//
//go:generate mockgen -destination=mocks/dbus_client_mock.go -package=mocks github.com/Canterrain/spotipi-eink/internal/source DBusClient
type DBusClient interface {
	// Close closes the D-Bus connection
	Close() error

	// GetProperty retrieves a property from a D-Bus object
	// service: The bus name (e.g., "org.mpris.MediaPlayer2.spotify")
	// path: The object path (e.g., "/org/mpris/MediaPlayer2")
	// prop: The property name (e.g., "org.mpris.MediaPlayer2.Player.Metadata")
	GetProperty(service, path, prop string) (dbus.Variant, error)
}

// StdDBusClient is the real implementation using godbus
type StdDBusClient struct {
	conn *dbus.Conn
}

// NewStdDBusClient creates a real D-Bus client connected to the session bus
func NewStdDBusClient() (*StdDBusClient, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, err
	}
	return &StdDBusClient{conn: conn}, nil
}

// Close closes the D-Bus connection
func (c *StdDBusClient) Close() error {
	return c.conn.Close()
}

// GetProperty retrieves a property from a D-Bus object
func (c *StdDBusClient) GetProperty(service, path, prop string) (dbus.Variant, error) {
	obj := c.conn.Object(service, dbus.ObjectPath(path))
	return obj.GetProperty(prop)
}
