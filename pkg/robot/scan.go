package robot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hipsterbrown/feetech-servo/feetech"
	"go.bug.st/serial"
)

// BaudRate is the STS bus speed.
const BaudRate = 1_000_000

// ScanTimeout bounds the servo scan on one port.
const ScanTimeout = 2 * time.Second

// PortInfo describes a serial port carrying a complete arm.
type PortInfo struct {
	Port   string
	Servos []feetech.FoundServo
}

// FindArms scans every serial port for a bus answering on servo IDs 1-6.
func FindArms(ctx context.Context) ([]PortInfo, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("list ports: %w", err)
	}

	var arms []PortInfo
	for _, port := range ports {
		// Skip Bluetooth ports on macOS
		if strings.Contains(port, "Bluetooth") {
			continue
		}

		servos, err := scanPort(ctx, port)
		if err != nil {
			continue
		}
		if IsSixAxisArm(servos) {
			arms = append(arms, PortInfo{Port: port, Servos: servos})
		}
	}

	return arms, nil
}

func scanPort(ctx context.Context, port string) ([]feetech.FoundServo, error) {
	ctx, cancel := context.WithTimeout(ctx, ScanTimeout)
	defer cancel()

	bus, err := feetech.NewBus(feetech.BusConfig{
		Port:     port,
		BaudRate: BaudRate,
		Protocol: feetech.ProtocolSTS,
		Timeout:  100 * time.Millisecond,
	})
	if err != nil {
		return nil, err
	}
	defer bus.Close()

	return bus.Scan(ctx, 1, len(AllJoints()))
}

// IsSixAxisArm reports whether servos are exactly IDs 1-6.
func IsSixAxisArm(servos []feetech.FoundServo) bool {
	n := len(AllJoints())
	if len(servos) != n {
		return false
	}

	ids := make(map[int]bool)
	for _, s := range servos {
		ids[s.ID] = true
	}

	for i := 1; i <= n; i++ {
		if !ids[i] {
			return false
		}
	}

	return true
}
