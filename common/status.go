package common

//go:generate go tool enumer -type Status -trimprefix Status

// Status is the outcome of the processing of one item (interval or file)
type Status int

const (
	StatusDONE   Status = iota // Processed and written
	StatusEMPTY                // Nothing to write (e.g. no acquisition in the interval)
	StatusFAILED               // Processing error
)
