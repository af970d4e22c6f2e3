package platform

import (
	"fmt"
	"hash/fnv"
	"net"
	"time"

	"github.com/cockroachdb/errors"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

// InstanceGuard holds the single-instance lock: a listener on a localhost port
// derived from the app name. The OS releases it when the process dies.
type InstanceGuard struct {
	listener net.Listener
	address  string
}

// AcquireSingleInstance binds the app's lock port.
func AcquireSingleInstance(appName string) (*InstanceGuard, error) {
	address := instanceAddress(appName)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, errors.Wrapf(ErrAlreadyRunning, "lock %s", address)
	}
	return &InstanceGuard{listener: listener, address: address}, nil
}

// InstanceRunning reports whether some process holds the app's lock port. Used
// before detaching so the parent can fail in the foreground.
func InstanceRunning(appName string) bool {
	conn, err := net.DialTimeout("tcp", instanceAddress(appName), 200*time.Millisecond)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

// Release frees the single instance lock.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	return guard.listener.Close()
}

// Address returns the bound address.
func (guard *InstanceGuard) Address() string {
	if guard == nil {
		return ""
	}
	return guard.address
}

func instanceAddress(appName string) string {
	return fmt.Sprintf("127.0.0.1:%d", portFromName(appName))
}

func portFromName(appName string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	rangeSize := maxPort - minPort + 1
	return minPort + int(hash.Sum32()%uint32(rangeSize))
}
