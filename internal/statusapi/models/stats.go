// Package models holds the JSON response shapes for the status API.
package models

import "time"

// StatusResponse is the /healthz response body.
type StatusResponse struct {
	Status string `json:"status"`
}

// CPUStats contains system CPU statistics.
type CPUStats struct {
	NumCPU      int     `json:"num_cpu"`
	UsedPercent float64 `json:"used_percent"`
	IdlePercent float64 `json:"idle_percent"`
}

// MemoryStats contains system memory statistics.
type MemoryStats struct {
	TotalMB     float64 `json:"total_mb"`
	FreeMB      float64 `json:"free_mb"`
	UsedMB      float64 `json:"used_mb"`
	UsedPercent float64 `json:"used_percent"`
}

// DNSStatsResponse contains DNS query counters.
type DNSStatsResponse struct {
	QueriesUDP   uint64 `json:"queries_udp"`
	QueriesTCP   uint64 `json:"queries_tcp"`
	ResponsesNX  uint64 `json:"responses_nxdomain"`
	ResponsesErr uint64 `json:"responses_error"`
}

// ServerStatsResponse is the /stats response body.
type ServerStatsResponse struct {
	InstanceID    string           `json:"instance_id"`
	Uptime        string           `json:"uptime"`
	UptimeSeconds int64            `json:"uptime_seconds"`
	StartTime     time.Time        `json:"start_time"`
	CPU           CPUStats         `json:"cpu"`
	Memory        MemoryStats      `json:"memory"`
	DNSStats      DNSStatsResponse `json:"dns"`
}
