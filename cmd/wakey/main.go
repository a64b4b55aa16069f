package main

import (
	"flag"
	"fmt"
	"os"

	"wakey/internal/wakey"
)

func main() {
	settingsPath := flag.String("settings", "settings.yaml", "path to the settings file")
	flag.Parse()

	if err := wakey.Run(*settingsPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
