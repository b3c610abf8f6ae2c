// Package utils provides common utility functions for the device-inventory application.
// It includes the helpers used at the adapter boundary to turn RouterOS wire strings
// into typed, optional values.
package utils
