package model

import "time"

const DefaultTimeout = 500 * time.Millisecond
const DefaultLockTimeout = 2 * time.Second
const DefaultMaxConcurrentSettlements = 64

const HeaderContentType = "Content-Type"

type ContextKey string

const (
	KeyContextLogger     ContextKey = "logger"
	KeyContextCustomerID ContextKey = "customer_id"
)

const KeyLoggerError = "error"
