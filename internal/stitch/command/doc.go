// Package command adapts an external stitcher binary to the stitch.Engine
// contract.
//
// Any program works as long as it accepts input image paths and an output
// path on its command line and reports the OpenCV stitcher status as its exit
// code. A thin wrapper around cv::Stitcher is the intended target. Arguments
// come from a template so the mode and confidence threshold can be forwarded
// under whatever flag names the tool uses.
package command
