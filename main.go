package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/creeperdoesredstone/gemmarkups/internal/workspace"
)

var (
	assetsDir = kingpin.Flag("assets", "Folder that include paths are resolved against").Short('a').Default(".").ExistingDir()
	watch     = kingpin.Flag("watch", "Watch files for changes and recompile automatically").Short('w').Bool()
	files     = kingpin.Arg("files", "List of GemXML files to compile").Required().ExistingFiles()
)

func main() {
	kingpin.Parse()

	if *watch {
		err := watchFiles()
		if err != nil {
			kingpin.Fatalf("failed to watch files: %s", err)
		}
	} else {
		err := compileAll()
		if err != nil {
			kingpin.Fatalf("failed to compile files: %s", err)
		}
	}
}

func compileAll() error {
	ws := workspace.New(*assetsDir)

	for _, fname := range *files {
		err := compileFile(ws, fname)
		if err != nil {
			return fmt.Errorf("compile file %q: %w", fname, err)
		}
	}

	return nil
}

func compileFile(ws *workspace.Workspace, fname string) error {
	contents, err := os.ReadFile(fname)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	window, err := ws.LoadWithContents(filepath.Base(fname), contents)
	if err != nil {
		return err
	}

	fmt.Println(window)
	return nil
}

func watchFiles() error {
	watcher, err := NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	for _, f := range *files {
		err = watcher.WatchFile(f)
		if err != nil {
			return fmt.Errorf("watch file %q: %w", f, err)
		}
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	log.Println("watching files for changes...")

	<-ch
	return nil
}
