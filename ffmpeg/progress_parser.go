// Package ffmpeg recognises ffmpeg's periodic stats lines so they can be
// logged as structured progress instead of raw text.
package ffmpeg

import (
	"regexp"
	"strconv"
	"strings"

	"fixmerge/models"
)

// ProgressParser parses ffmpeg stderr output for encoding metrics
type ProgressParser struct {
	frameRegex   *regexp.Regexp
	fpsRegex     *regexp.Regexp
	sizeRegex    *regexp.Regexp
	timeRegex    *regexp.Regexp
	bitrateRegex *regexp.Regexp
	speedRegex   *regexp.Regexp
}

// NewProgressParser creates a new parser for ffmpeg progress output
func NewProgressParser() *ProgressParser {
	return &ProgressParser{
		// Match both "frame=123" and "frame= 123" formats
		frameRegex:   regexp.MustCompile(`(?:^|\s)frame=\s*(\d+)`),
		fpsRegex:     regexp.MustCompile(`(?:^|\s)fps=\s*([0-9.]+)`),
		sizeRegex:    regexp.MustCompile(`(?:^|\s)(?:L?size)=\s*([0-9]+[kKMG]i?B)`),
		timeRegex:    regexp.MustCompile(`(?:^|\s)time=\s*(-?[0-9]+:[0-9]{2}:[0-9.]+)`),
		bitrateRegex: regexp.MustCompile(`(?:^|\s)bitrate=\s*([0-9.]+kbits/s)`),
		speedRegex:   regexp.MustCompile(`(?:^|\s)speed=\s*([0-9.]+)x?`),
	}
}

// ParseLine extracts the metrics of a single stats line. The boolean is
// false for lines that carry neither a frame counter nor a timestamp.
func (pp *ProgressParser) ParseLine(line string) (models.Progress, bool) {
	var progress models.Progress
	line = strings.TrimSpace(line)
	if line == "" {
		return progress, false
	}

	frameMatch := pp.frameRegex.FindStringSubmatch(line)
	timeMatch := pp.timeRegex.FindStringSubmatch(line)
	if frameMatch == nil && timeMatch == nil {
		return progress, false
	}

	if frameMatch != nil {
		if frame, err := strconv.ParseInt(frameMatch[1], 10, 64); err == nil {
			progress.Frame = frame
		}
	}
	if timeMatch != nil {
		progress.Time = timeMatch[1]
	}
	if matches := pp.fpsRegex.FindStringSubmatch(line); len(matches) > 1 {
		if fps, err := strconv.ParseFloat(matches[1], 64); err == nil {
			progress.FPS = fps
		}
	}
	if matches := pp.sizeRegex.FindStringSubmatch(line); len(matches) > 1 {
		progress.Size = matches[1]
	}
	if matches := pp.bitrateRegex.FindStringSubmatch(line); len(matches) > 1 {
		progress.Bitrate = matches[1]
	}
	if matches := pp.speedRegex.FindStringSubmatch(line); len(matches) > 1 {
		if speed, err := strconv.ParseFloat(matches[1], 64); err == nil {
			progress.Speed = speed
		}
	}

	return progress, true
}
