// Package devkit provides scripted fakes and response fixtures for testing
// executors and backends without a live quantum cloud endpoint.
package devkit
