package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"tinygo.org/x/bluetooth"

	sharedlogger "vitalink/internal/shared/logger"
	sourceapp "vitalink/internal/source/application"
)

// Default 16-bit service/characteristic identifiers for the sensor's text
// stream (UART-style transparent service).
const (
	DefaultServiceUUID        = 0xFFE0
	DefaultCharacteristicUUID = 0xFFE1

	DefaultScanTimeout = 30 * time.Second
)

// ErrBluetoothUnavailable indicates the adapter could not be enabled, e.g.
// no Bluetooth hardware or the daemon lacks permission to use it.
var ErrBluetoothUnavailable = errors.New("bluetooth adapter unavailable")

// ParseUUID16 parses a 16-bit UUID from hex text such as "ffe0" or
// "0xFFE0".
func ParseUUID16(s string) (uint16, error) {
	trimmed := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "0x")
	v, err := strconv.ParseUint(trimmed, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid 16-bit UUID %q: %w", s, err)
	}
	return uint16(v), nil
}

// BLEConfig scopes device discovery and notification subscription.
type BLEConfig struct {
	ServiceUUID        uint16
	CharacteristicUUID uint16
	// DeviceAddress optionally pins discovery to one peripheral; when
	// empty, the first peripheral advertising ServiceUUID is used.
	DeviceAddress string
	ScanTimeout   time.Duration
}

func (c BLEConfig) withDefaults() BLEConfig {
	if c.ServiceUUID == 0 {
		c.ServiceUUID = DefaultServiceUUID
	}
	if c.CharacteristicUUID == 0 {
		c.CharacteristicUUID = DefaultCharacteristicUUID
	}
	if c.ScanTimeout <= 0 {
		c.ScanTimeout = DefaultScanTimeout
	}
	return c
}

// matchesDevice decides whether a scan result is the peripheral we want.
func (c BLEConfig) matchesDevice(address string, advertisesService bool) bool {
	if c.DeviceAddress != "" {
		return strings.EqualFold(address, c.DeviceAddress)
	}
	return advertisesService
}

// BLESource is a hardware session: one paired peripheral streaming textual
// payloads over characteristic notifications. The source does not retry;
// on disconnect Run returns and the manager transitions to idle.
type BLESource struct {
	logger   sharedlogger.Logger
	ingestor sourceapp.Ingestor
	cfg      BLEConfig

	adapter        *bluetooth.Adapter
	device         bluetooth.Device
	characteristic bluetooth.DeviceCharacteristic

	disconnected chan struct{}
	closeOnce    sync.Once
}

// NewBLESource creates an unconnected hardware source.
func NewBLESource(logger sharedlogger.Logger, ingestor sourceapp.Ingestor, cfg BLEConfig) *BLESource {
	return &BLESource{
		logger:       logger,
		ingestor:     ingestor,
		cfg:          cfg.withDefaults(),
		adapter:      bluetooth.DefaultAdapter,
		disconnected: make(chan struct{}),
	}
}

// Name implements domain.Source.
func (s *BLESource) Name() string {
	return "ble"
}

// Connect performs the full pairing sequence: enable the adapter, scan for
// a matching peripheral, connect, and resolve the configured service and
// characteristic. Any failure aborts the attempt; there are no retries.
func (s *BLESource) Connect(ctx context.Context) error {
	if err := s.adapter.Enable(); err != nil {
		return fmt.Errorf("%w: %v", ErrBluetoothUnavailable, err)
	}

	serviceUUID := bluetooth.New16BitUUID(s.cfg.ServiceUUID)
	characteristicUUID := bluetooth.New16BitUUID(s.cfg.CharacteristicUUID)

	result, err := s.scan(ctx, serviceUUID)
	if err != nil {
		return err
	}

	s.logger.Info("Connecting to peripheral", "address", result.Address.String(), "name", result.LocalName())

	device, err := s.adapter.Connect(result.Address, bluetooth.ConnectionParams{})
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", result.Address.String(), err)
	}

	services, err := device.DiscoverServices([]bluetooth.UUID{serviceUUID})
	if err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to discover services on %s: %w", result.Address.String(), err)
	}
	if len(services) == 0 {
		device.Disconnect()
		return fmt.Errorf("service %s not found on %s", serviceUUID.String(), result.Address.String())
	}

	characteristics, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{characteristicUUID})
	if err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to discover characteristics on %s: %w", result.Address.String(), err)
	}
	if len(characteristics) == 0 {
		device.Disconnect()
		return fmt.Errorf("characteristic %s not found on %s", characteristicUUID.String(), result.Address.String())
	}

	s.adapter.SetConnectHandler(func(d bluetooth.Device, connected bool) {
		if !connected {
			s.closeOnce.Do(func() { close(s.disconnected) })
		}
	})

	s.device = device
	s.characteristic = characteristics[0]
	return nil
}

// Run subscribes to value-change notifications and blocks until the
// context is cancelled or the peripheral disconnects. Each notification
// buffer is decoded as UTF-8 text and fed to the ingestion path, producing
// zero or one sample.
func (s *BLESource) Run(ctx context.Context) error {
	err := s.characteristic.EnableNotifications(func(buf []byte) {
		payload := string(buf)
		s.logger.Debug("Notification received", "payload", payload)
		s.ingestor.Ingest(ctx, payload)
	})
	if err != nil {
		s.device.Disconnect()
		return fmt.Errorf("failed to enable notifications: %w", err)
	}

	select {
	case <-ctx.Done():
		s.device.Disconnect()
		return ctx.Err()
	case <-s.disconnected:
		return errors.New("peripheral disconnected")
	}
}

func (s *BLESource) scan(ctx context.Context, serviceUUID bluetooth.UUID) (bluetooth.ScanResult, error) {
	scanCtx, cancel := context.WithTimeout(ctx, s.cfg.ScanTimeout)
	defer cancel()

	found := make(chan bluetooth.ScanResult, 1)
	scanErr := make(chan error, 1)

	go func() {
		err := s.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
			if !s.cfg.matchesDevice(result.Address.String(), result.HasServiceUUID(serviceUUID)) {
				return
			}
			adapter.StopScan()
			select {
			case found <- result:
			default:
			}
		})
		if err != nil {
			scanErr <- err
		}
	}()

	select {
	case result := <-found:
		return result, nil
	case err := <-scanErr:
		return bluetooth.ScanResult{}, fmt.Errorf("scan failed: %w", err)
	case <-scanCtx.Done():
		s.adapter.StopScan()
		return bluetooth.ScanResult{}, fmt.Errorf("no matching peripheral found: %w", scanCtx.Err())
	}
}
