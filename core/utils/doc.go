// Package utils provides helpers for working with loosely typed JSON values, such as the
// free-form asset metadata returned by the media host.
package utils
