package model

import "time"

const DefaultTimeout = 500 * time.Millisecond

const HeaderContentType = "Content-Type"

const KeyLoggerError = "error"

type ContextKey string

const KeyContextLogger ContextKey = "logger"
