// Package server serves demo forms with templated fields over HTTP and saves
// submissions through the normalizing save path.
package server
