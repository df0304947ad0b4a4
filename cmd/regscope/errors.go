package main

import "errors"

var (
	ErrNoKeysConfigured = errors.New("no key paths configured (set keys in regscope.yaml or pass --key)")
	ErrBadKeyList       = errors.New("invalid key list")
	ErrOpenStore        = errors.New("open registry store")
	ErrOpenHistory      = errors.New("open edit history")
	ErrKeyNotProjected  = errors.New("key is outside the configured key list")
	ErrNotATerminal     = errors.New("browse requires an interactive terminal")
	ErrHistoryDisabled  = errors.New("edit history is disabled in the configuration")
)
