package manager

import (
	"sync"

	"github.com/Mikuu177/qt-cw-vedio/internal/manager/config"
	"github.com/Mikuu177/qt-cw-vedio/pkg/export"
	"github.com/Mikuu177/qt-cw-vedio/pkg/ffmpeg"
	"github.com/Mikuu177/qt-cw-vedio/pkg/logger"
	"github.com/Mikuu177/qt-cw-vedio/pkg/marker"
	"github.com/Mikuu177/qt-cw-vedio/pkg/timeline"
	"github.com/Mikuu177/qt-cw-vedio/pkg/undo"
)

// The fields of this struct are read-only after initialization,
// i.e. the values the pointers point to may change but
// the pointers themselves will not.
type Manager struct {
	Config *config.Config

	FFMpeg  *ffmpeg.FFMpeg
	FFProbe *ffmpeg.FFProbe

	Timeline *timeline.Timeline
	Markers  *marker.Registry
	Undo     *undo.Stack

	exportMutex  sync.Mutex
	exports      map[int]*export.Runner
	nextExportID int
}

var instance *Manager

func GetInstance() *Manager {
	if instance == nil {
		panic("manager not initialized")
	}
	return instance
}

// RefreshLogLevel reapplies the configured log level.
// Call this when the log level preference changes.
func (s *Manager) RefreshLogLevel() {
	logger.SetLogLevel(s.Config.GetLogLevel())
}

// Shutdown gracefully stops the manager, cancelling any export still
// running.
func (s *Manager) Shutdown() {
	for _, id := range s.RunningExports() {
		logger.Infof("[manager] cancelling export %d on shutdown", id)
		s.CancelExport(id)
	}

	if err := s.Config.Write(); err != nil {
		logger.Errorf("[manager] error writing configuration: %v", err)
	}
}
