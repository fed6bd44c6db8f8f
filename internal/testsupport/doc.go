// Package testsupport holds fixtures shared by package tests: temp-dir backed
// configs and deterministic synthetic photographs.
package testsupport
