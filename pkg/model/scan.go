package model

// ScanConfig holds optional discovery filters for a scan.
// Empty or nil lists match everything.
type ScanConfig struct {
	SearchMakes     []string `json:"search_makes,omitempty"`
	SearchFirmwares []string `json:"search_firmwares,omitempty"`
}

// ScanGroup describes one named network range to scan.
// The name is used as a correlation key in every event the scan emits.
type ScanGroup struct {
	Name         string     `json:"name"`
	NetworkRange string     `json:"network_range"` // CIDR (192.168.1.0/24) or range (192.168.1.1-100)
	Config       ScanConfig `json:"config"`
}

// Miner represents a discovered ASIC miner.
// Field contents come from the discovery backend and are passed through opaquely.
type Miner struct {
	IP              string `json:"ip"`
	MACAddress      string `json:"mac_address,omitempty"`
	Hostname        string `json:"hostname,omitempty"`
	Make            string `json:"make,omitempty"`
	Model           string `json:"model,omitempty"`
	Firmware        string `json:"firmware,omitempty"`
	FirmwareVersion string `json:"firmware_version,omitempty"`
}

// GroupStatus is a read-only snapshot of one group's scan bookkeeping.
type GroupStatus struct {
	Group        string `json:"group"`
	TotalHosts   int    `json:"total_hosts"`
	ScannedHosts int    `json:"scanned_hosts"`
	MinersFound  int    `json:"miners_found"`
	Completed    bool   `json:"completed"`
	Err          error  `json:"-"`
}
