//go:build !linux

package gps

import (
	"fmt"
	"io"

	serial "go.bug.st/serial"
)

func autoDetectDevice() string {
	ports, err := serial.GetPortsList()
	if err != nil || len(ports) == 0 {
		return ""
	}
	return ports[0]
}

func openSerial(path string, baud int) (io.ReadWriteCloser, error) {
	port, err := serial.Open(path, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial failed: %w", err)
	}
	return port, nil
}
