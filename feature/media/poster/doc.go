// Package poster generates still images from uploaded videos.
//
// FFmpeg shells out to the ffmpeg binary and grabs the frame at one second,
// scaled to 640 pixels wide, as JPEG.
package poster
