//go:build !windows

package main

import (
	"errors"

	"github.com/regscope/regscope/pkg/registry"
)

var errLiveRegistryUnsupported = errors.New("the live registry is only available on Windows; use --mock-registry")

func liveProvider() (registry.Provider, error) {
	return nil, errLiveRegistryUnsupported
}
