/*
go-spikecount provides the post processing pipeline used by a handheld
wheat inspection tool.  A YOLOv5 model exported with normalised outputs emits
a raw tensor of candidate boxes for every camera frame, this module decodes
that tensor, runs Non-Maximum Suppression per class and then across classes,
maps the surviving boxes into display coordinates and counts the number of
wheat spikes seen for each pot that passes through the camera's view.

Inference itself, camera capture and persistence are left to the host
application.  See the example/spikecount directory for a command line demo
that drives the pipeline from recorded tensor frames.
*/
package spikecount
