package main

import (
	"github.com/fsnotify/fsnotify"
)

// watchFile calls onChange whenever path is written to. fsnotify is already
// pulled in transitively by gobgp's config package; the policy file isn't a
// gobgp-format file, so it gets its own direct watch instead of being
// routed through config.WatchConfigFile.
func watchFile(path string, onChange func()) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return
	}
	go func() {
		defer watcher.Close()
		for event := range watcher.Events {
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				onChange()
			}
		}
	}()
}
