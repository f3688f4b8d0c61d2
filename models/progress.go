package models

// Progress holds the metrics of one ffmpeg stats line.
type Progress struct {
	Frame   int64   // Current frame number
	FPS     float64 // Frames per second being processed
	Size    string  // Current output size (e.g., "1024kB")
	Time    string  // Current timestamp (HH:MM:SS.MS)
	Bitrate string  // Current bitrate (e.g., "128.0kbits/s")
	Speed   float64 // Encoding speed multiplier (e.g., 2.34 means 2.34x realtime)
}
