package platform

import (
	"time"
	"unsafe"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sys/windows"
)

var (
	user32           = windows.NewLazySystemDLL("user32.dll")
	kernel32         = windows.NewLazySystemDLL("kernel32.dll")
	getLastInputInfo = user32.NewProc("GetLastInputInfo")
	getTickCount64   = kernel32.NewProc("GetTickCount64")
)

type idleProvider struct{}

type lastInputInfo struct {
	cbSize uint32
	dwTime uint32
}

func newIdleProvider() IdleProvider {
	return &idleProvider{}
}

// newIdleSource samples GetLastInputInfo; Windows has no push notification for
// user idleness that works from a background process.
func newIdleSource(logger *zap.SugaredLogger) IdleSource {
	return &PollingIdleSource{Provider: newIdleProvider(), Logger: logger}
}

func (provider *idleProvider) IdleDuration() (time.Duration, error) {
	info := lastInputInfo{cbSize: uint32(unsafe.Sizeof(lastInputInfo{}))}

	result, _, err := getLastInputInfo.Call(uintptr(unsafe.Pointer(&info)))
	if result == 0 {
		return 0, errors.Wrap(err, "get last input info")
	}

	tickResult, _, tickErr := getTickCount64.Call()
	if tickResult == 0 && tickErr != windows.ERROR_SUCCESS {
		return 0, errors.Wrap(tickErr, "get tick count")
	}

	// dwTime is a 32-bit tick count; wrapping subtraction keeps it valid past 49 days
	idleMillis := uint32(tickResult) - info.dwTime
	return time.Duration(idleMillis) * time.Millisecond, nil
}
