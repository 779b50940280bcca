package manager

import (
	"fmt"

	"github.com/Mikuu177/qt-cw-vedio/internal/manager/config"
	"github.com/Mikuu177/qt-cw-vedio/pkg/export"
	"github.com/Mikuu177/qt-cw-vedio/pkg/ffmpeg"
	"github.com/Mikuu177/qt-cw-vedio/pkg/logger"
	"github.com/Mikuu177/qt-cw-vedio/pkg/marker"
	"github.com/Mikuu177/qt-cw-vedio/pkg/timeline"
	"github.com/Mikuu177/qt-cw-vedio/pkg/undo"
)

// Only called once at startup
func Initialize() (*Manager, error) {
	cfg, err := config.Initialize()
	if err != nil {
		return nil, fmt.Errorf("initializing configuration: %w", err)
	}

	logger.SetLogLevel(cfg.GetLogLevel())

	if cfg.IsNewSystem() {
		logger.Warnf("config file not found. Assuming new system...")
	} else {
		logger.Infof("using config file: %s", cfg.GetConfigFile())
	}

	mgr := &Manager{
		Config: cfg,

		FFMpeg:  &ffmpeg.FFMpeg{},
		FFProbe: ffmpeg.NewFFProbe(""),

		Timeline: timeline.New(),
		Markers:  marker.NewRegistry(),
		Undo:     undo.NewStack(cfg.GetUndoDepth()),

		exports: make(map[int]*export.Runner),
	}

	mgr.initFFMpeg()

	instance = mgr
	return mgr, nil
}

// initFFMpeg resolves the transcoder binaries from configuration, falling
// back to PATH lookup. A missing binary is not fatal at startup; editing
// works without it and export submission reports ErrToolMissing.
func (s *Manager) initFFMpeg() {
	ffmpegPath := s.Config.GetFFMpegPath()
	if ffmpegPath == "" {
		ffmpegPath = ffmpeg.FindFFMpeg()
	}
	ffprobePath := s.Config.GetFFProbePath()
	if ffprobePath == "" {
		ffprobePath = ffmpeg.FindFFProbe()
	}

	if ffmpegPath == "" {
		logger.Warnf("[manager] couldn't find ffmpeg; export is unavailable until it is installed or configured")
	} else {
		s.FFMpeg.Configure(ffmpegPath)
	}

	if ffprobePath == "" {
		logger.Warnf("[manager] couldn't find ffprobe; media probing is unavailable")
	} else {
		s.FFProbe.Configure(ffprobePath)
	}
}
