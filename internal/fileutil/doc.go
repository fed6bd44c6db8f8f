// Package fileutil holds small filesystem helpers shared by the output paths.
package fileutil
