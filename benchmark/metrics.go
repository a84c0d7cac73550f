package benchmark

import "time"

// PerformanceMetrics captures detailed performance data for one scenario
type PerformanceMetrics struct {
	Scenario        Scenario      `json:"scenario"`
	Timestamp       time.Time     `json:"timestamp"`
	TotalDuration   time.Duration `json:"total_duration"`
	ResizeDuration  time.Duration `json:"resize_duration"`
	SharpenDuration time.Duration `json:"sharpen_duration"`
	FramesPerSecond float64       `json:"frames_per_second"`
	MinFrame        time.Duration `json:"min_frame"`
	MaxFrame        time.Duration `json:"max_frame"`
	AvgFrame        time.Duration `json:"avg_frame"`
	// Checksum of the last output frame. Identical across runs of the same scenario.
	Checksum    string        `json:"checksum"`
	MemoryStats MemoryMetrics `json:"memory_stats"`
	CPUStats    CPUMetrics    `json:"cpu_stats"`
}

// MemoryMetrics captures memory usage statistics
type MemoryMetrics struct {
	AllocBytes      uint64 `json:"alloc_bytes"`
	TotalAllocBytes uint64 `json:"total_alloc_bytes"`
	SysBytes        uint64 `json:"sys_bytes"`
	NumGC           uint32 `json:"num_gc"`
	HeapAllocBytes  uint64 `json:"heap_alloc_bytes"`
	HeapSysBytes    uint64 `json:"heap_sys_bytes"`
}

// CPUMetrics captures CPU usage statistics
type CPUMetrics struct {
	NumCPU     int `json:"num_cpu"`
	GOMAXPROCS int `json:"gomaxprocs"`
}
