// Package utils provides small helpers shared by commands and handlers: flag
// conversion for query values and order-preserving list deduplication.
package utils
