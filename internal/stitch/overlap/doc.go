// Package overlap is a pure-Go stitch.Engine that aligns photographs by
// translation only.
//
// Registration converts each input to a luminance plane with a coverage mask,
// builds a box-filtered pyramid until the smaller input is about 64 pixels
// across, searches every offset at the coarsest level, then refines by two
// pixels per finer level. Candidates are scored with zero-mean normalized
// cross-correlation over the covered overlap; that score is the confidence
// compared against the run's threshold.
//
// Status mapping:
//
//	no textured overlap candidate           HomographyEstimationFailed
//	confidence below threshold              NeedMoreImages
//	panorama batch reverses pan direction   CameraParamsAdjustFailed
//	canvas allocation out of range          Other
//
// The engine does not correct rotation, perspective or lens distortion; use the
// command engine with a full stitcher for handheld panoramas.
package overlap
