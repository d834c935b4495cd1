// orderctl inspects and resets the saved panel orders used by the dashboard.
//
//	orderctl list
//	orderctl show <key>
//	orderctl clear <key>
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"tickerdeck/config"
	"tickerdeck/sortable"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	baseDir, err := config.Dir()
	if err != nil {
		fatal(err)
	}
	cfg, err := config.Load(filepath.Join(baseDir, "config.yaml"))
	if err != nil {
		fatal(err)
	}
	store, err := sortable.NewFileStore(cfg.Storage.Dir)
	if err != nil {
		fatal(err)
	}

	switch os.Args[1] {
	case "list":
		keys, err := store.Keys()
		if err != nil {
			fatal(err)
		}
		if len(keys) == 0 {
			fmt.Println("no saved orders")
			return
		}
		for _, key := range keys {
			fmt.Println(key)
		}

	case "show":
		key := requireKey()
		entries, err := store.LoadOrder(key)
		if err != nil {
			fatal(err)
		}
		if entries == nil {
			fmt.Printf("no saved order for %q\n", key)
			return
		}
		for _, e := range entries {
			fmt.Printf("%3d  %s\n", e.Order, e.ID)
		}

	case "clear":
		key := requireKey()
		if err := store.Clear(key); err != nil {
			fatal(err)
		}
		fmt.Printf("cleared %q\n", key)

	default:
		usage()
		os.Exit(1)
	}
}

func requireKey() string {
	if len(os.Args) < 3 {
		usage()
		os.Exit(1)
	}
	return os.Args[2]
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: orderctl list | show <key> | clear <key>")
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "orderctl: %v\n", err)
	os.Exit(1)
}
