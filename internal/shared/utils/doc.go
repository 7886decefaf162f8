// Package utils holds small helpers shared across the desktop core.
package utils
