package wakey

import (
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Run is the client entry point. If the alarm is sounding (or the mock
// flag forces it), the awake test runs and success silences the alarm
// on the server; otherwise the management console opens.
func Run(settingsPath string) error {
	runtime.LockOSThread()

	settings, err := LoadSettings(settingsPath)
	if err != nil {
		return err
	}
	client := NewPrefClient(settings.Server.Address, settings.Server.Port)

	alarmState, err := client.GetAlarmState()
	if err != nil {
		return fmt.Errorf("query alarm state: %w", err)
	}
	if settings.MockTest {
		alarmState = 1
	}

	if alarmState == 1 {
		if err := runAwakeTest(settings); err != nil {
			return err
		}
		if err := client.SetAlarmState(0); err != nil {
			return fmt.Errorf("silence alarm: %w", err)
		}
		return nil
	}
	return runManagement(settings, settingsPath, client)
}

// runAwakeTest opens the window, generates and renders the corridor,
// then hands control to the tracker until the user traces it.
func runAwakeTest(settings Settings) error {
	window, err := initWindow(settings.Window.Width, settings.Window.Height)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	if err := InitAudio(); err != nil {
		fmt.Fprintf(os.Stderr, "audio init failed (continuing without sound): %v\n", err)
	}
	StartAlarmSiren()
	defer StopAlarmSiren()

	canvas, err := NewGLCanvas(window)
	if err != nil {
		return err
	}

	// The window manager may not honor the requested size exactly;
	// generate against what we actually got.
	width, height := canvas.Size()
	gen := NewGenerator(width, height, BorderMargin, rand.New(rand.NewSource(challengeSeed(settings))))
	model := gen.Generate()

	renderer := NewRenderer(canvas)
	renderer.Draw(model)
	renderer.Thicken(model)

	pointer := &GLFWPointer{window: window}
	tracker := NewTracker(renderer, pointer, NewCorrector(pointer, PrecisionThreshold), TrackerConfig{
		TitleMargin: settings.Window.TitleMargin,
		XOffset:     settings.Mouse.XOffset,
		YOffset:     settings.Mouse.YOffset,
	})
	tracker.OnWall = PlayWallBlip
	tracker.OnSuccess = func() {
		StopAlarmSiren()
		PlaySuccessChime()
	}
	tracker.Run(model)

	fmt.Println("Congratulations. You passed the test!")
	return nil
}

// challengeSeed picks the corridor seed: settings first, then the
// WAKEY_SEED environment override, then the clock.
func challengeSeed(settings Settings) int64 {
	if settings.Seed != 0 {
		return settings.Seed
	}
	if s := os.Getenv("WAKEY_SEED"); s != "" {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			return v
		}
	}
	return time.Now().UnixNano()
}

// runManagement opens the preference console, re-reading the settings
// file between iterations when it changes on disk.
func runManagement(settings Settings, settingsPath string, client *PrefClient) error {
	menu := NewMenu(client, os.Stdin, os.Stdout)

	watcher, err := NewSettingsWatcher(settingsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "settings watch failed (edits need a restart): %v\n", err)
	} else {
		defer watcher.Close()
		menu.Reload = func() *PrefClient {
			if !watcher.Pending() {
				return nil
			}
			reloaded, err := LoadSettings(settingsPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "settings reload failed (keeping previous): %v\n", err)
				return nil
			}
			settings = reloaded
			return NewPrefClient(settings.Server.Address, settings.Server.Port)
		}
	}

	return menu.Run()
}
