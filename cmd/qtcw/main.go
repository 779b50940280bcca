package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/Mikuu177/qt-cw-vedio/internal/build"
	"github.com/Mikuu177/qt-cw-vedio/internal/manager"
	"github.com/Mikuu177/qt-cw-vedio/pkg/logger"
)

func main() {
	exitCode := 0
	defer func() {
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	}()

	helpFlag := false
	pflag.BoolVarP(&helpFlag, "help", "h", false, "show this help text and exit")

	versionFlag := false
	pflag.BoolVarP(&versionFlag, "version", "v", false, "show version number and exit")

	pflag.Parse()

	if helpFlag {
		pflag.Usage()
		return
	}

	if versionFlag {
		fmt.Printf(build.VersionString() + "\n")
		return
	}

	mgr, err := manager.Initialize()
	if err != nil {
		fmt.Fprintf(os.Stderr, "initialization error: %v\n", err)
		exitCode = 1
		return
	}
	defer mgr.Shutdown()

	if !mgr.FFMpeg.Configured() {
		logger.Warnf("ffmpeg not found; timeline editing is available but export will fail")
	}

	exit := make(chan int)
	go handleSignals(exit)

	logger.Infof("editor core started, pid %d", os.Getpid())
	exitCode = <-exit
}

func handleSignals(exit chan<- int) {
	// handle signals
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	<-signals
	exit <- 0
}
