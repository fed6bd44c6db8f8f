// Package natsort orders file names the way people expect: embedded digit runs
// compare as integers ("img2" before "img10") and letters compare without
// regard to case.
package natsort
