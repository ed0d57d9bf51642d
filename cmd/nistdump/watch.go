package main

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/ausocean/utils/logging"
)

// watchDir keeps running, processing each file that fsnotify reports as
// created or written in dir. Files already present when it starts are not
// processed. It returns when the watcher's event or error channel closes.
func watchDir(dir, outDir string, log logging.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return err
	}
	log.Info(pkg+"watching directory", "dir", dir)

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			log.Debug(pkg+"saw file event", "name", ev.Name, "op", ev.Op.String())
			processFile(filepath.Clean(ev.Name), outDir, log)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Error(pkg+"watcher error", "error", err.Error())
		}
	}
}
