// Package stitch defines the contract between the assembly controller and a
// stitching backend.
//
// An Engine receives an ordered list of images and returns an Attempt whose
// Status is one of Success, NeedMoreImages, HomographyEstimationFailed,
// CameraParamsAdjustFailed or Other. Two implementations live in
// subpackages: overlap (pure Go translation registration) and command (an
// external stitcher binary). The controller only ever sees the interface.
package stitch
