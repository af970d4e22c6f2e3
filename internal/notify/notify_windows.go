package notify

import "github.com/cockroachdb/errors"

func newBackend(string) (backend, error) {
	return nil, errors.New("no notification backend on windows")
}
