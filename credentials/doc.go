// Package credentials locates and validates API credentials for remote QPU
// backends from an environment override, an explicit path, or a per-user
// config file.
package credentials
