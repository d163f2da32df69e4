package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"strings"
)

// TerminalID reads the machine's first active MAC address and hashes it
// into a short, stable identifier like "POS-A1B2C3D4". It is stamped on
// every sale so receipts can be traced back to the till that issued them.
func TerminalID() string {
	interfaces, err := net.Interfaces()
	if err != nil {
		return "POS-UNKNOWN"
	}

	var macAddress string
	for _, i := range interfaces {
		if i.Flags&net.FlagUp != 0 && len(i.HardwareAddr) > 0 {
			macAddress = i.HardwareAddr.String()
			break
		}
	}

	if macAddress == "" {
		return "POS-UNKNOWN"
	}

	hash := sha256.Sum256([]byte(macAddress + "SONAKSHI-POS"))
	hashString := hex.EncodeToString(hash[:])

	return "POS-" + strings.ToUpper(hashString[:8])
}
