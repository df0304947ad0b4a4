//go:build windows

package main

import (
	"github.com/regscope/regscope/pkg/registry"
	"github.com/regscope/regscope/pkg/registry/winreg"
)

func liveProvider() (registry.Provider, error) {
	return winreg.New(), nil
}
