//go:build windows

package idle

import (
	"fmt"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	moduser32            = windows.NewLazySystemDLL("user32.dll")
	modkernel32          = windows.NewLazySystemDLL("kernel32.dll")
	procGetLastInputInfo = moduser32.NewProc("GetLastInputInfo")
	procGetTickCount     = modkernel32.NewProc("GetTickCount")
)

type lastInputInfo struct {
	cbSize uint32
	dwTime uint32
}

type lastInputQuerier struct{}

// System returns the Windows querier backed by GetLastInputInfo.
func System() Querier {
	return lastInputQuerier{}
}

func (lastInputQuerier) IdleTime() (time.Duration, error) {
	info := lastInputInfo{cbSize: uint32(unsafe.Sizeof(lastInputInfo{}))}
	r, _, err := procGetLastInputInfo.Call(uintptr(unsafe.Pointer(&info)))
	if r == 0 {
		return 0, fmt.Errorf("GetLastInputInfo: %w", err)
	}

	now, _, _ := procGetTickCount.Call()
	// Both counters are 32-bit milliseconds and wrap after ~49 days.
	elapsed := uint32(now) - info.dwTime
	return time.Duration(elapsed) * time.Millisecond, nil
}
