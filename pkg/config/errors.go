package config

import "errors"

var (
	ErrReadConfig  = errors.New("read config file")
	ErrParseConfig = errors.New("parse config file")
)
