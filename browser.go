package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"
)

// Automation owns the single browser page driven by the booking flow.
// The page is exclusively owned and sequentially mutated; there is no
// concurrent access.
type Automation struct {
	config   *Config
	browser  *rod.Browser
	page     *rod.Page
	launcher *launcher.Launcher
}

func NewAutomation(config *Config) *Automation {
	return &Automation{config: config}
}

func (a *Automation) Close() {
	fmt.Println(T("cleaning_up"))

	if a.page != nil {
		a.page.Close()
	}
	if a.browser != nil {
		a.browser.Close()
	}
	if a.launcher != nil {
		a.launcher.Cleanup()
	}

	fmt.Println(T("browser_destroyed"))
}

func (a *Automation) setupBrowser() error {
	fmt.Println(T("browser_launching"))

	// Disable leakless mode on Windows to prevent deadlock
	// See: https://github.com/go-rod/rod/issues/853
	useLeakless := runtime.GOOS != "windows"

	chromePath, chromeExists := launcher.LookPath()

	a.launcher = launcher.New().
		Leakless(useLeakless).
		Headless(a.config.Headless)

	// Custom user data dir avoids conflicts with a running Chrome.
	if a.config.BrowserProfilePath != "" {
		a.launcher = a.launcher.UserDataDir(a.config.BrowserProfilePath)
	}

	if chromeExists {
		a.launcher = a.launcher.Bin(chromePath)
		fmt.Println(T("browser_system_chrome"))
	} else {
		fmt.Println(T("browser_chrome_missing"))
	}

	if runtime.GOOS == "windows" {
		fmt.Println(T("windows_leakless_off"))
	}

	controlURL, err := a.launcher.Launch()
	if err != nil {
		return fmt.Errorf("failed to launch browser: %w", err)
	}

	a.browser = rod.New().ControlURL(controlURL)
	if err := a.browser.Connect(); err != nil {
		return fmt.Errorf("failed to connect to browser: %w", err)
	}

	if a.config.IgnoreHTTPSErrors {
		if err := a.browser.IgnoreCertErrors(true); err != nil {
			a.debugLog("Warning: failed to ignore cert errors: %v", err)
		}
	}

	a.page, err = stealth.Page(a.browser)
	if err != nil {
		return fmt.Errorf("failed to create stealth page: %w", err)
	}

	fmt.Println(T("browser_launched"))
	return nil
}

// navigate loads a URL and waits for readiness according to the
// configured waitUntil mode, bounded by the configured timeout.
func (a *Automation) navigate(rawURL string) error {
	timeout := time.Duration(a.config.Timeout) * time.Millisecond
	page := a.page.Timeout(timeout)
	defer page.CancelTimeout()

	if err := page.Navigate(rawURL); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", rawURL, err)
	}

	switch a.config.WaitUntil {
	case "networkidle":
		wait := page.WaitRequestIdle(time.Second, nil, nil, nil)
		wait()
	case "domstable":
		if err := page.WaitDOMStable(time.Second, 0.1); err != nil {
			return fmt.Errorf("page did not stabilize: %w", err)
		}
	default:
		if err := page.WaitLoad(); err != nil {
			return fmt.Errorf("page failed to load: %w", err)
		}
	}
	return nil
}

// settle pauses for a fixed duration to absorb widget re-render latency
// after an interaction. These are fixed waits, not adaptive ones.
func (a *Automation) settle(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

func (a *Automation) debugLog(format string, args ...interface{}) {
	if a.config.DebugMode {
		fmt.Printf("[DEBUG] "+format+"\n", args...)
	}
}
