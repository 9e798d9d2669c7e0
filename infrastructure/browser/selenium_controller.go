package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"declarative_elements/application/binding"
	"declarative_elements/domain/entities"
	"declarative_elements/domain/interfaces"
	"declarative_elements/infrastructure/config"

	"github.com/sirupsen/logrus"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
)

// w3cElementKey is the JSON key of a web element reference in the W3C protocol
const w3cElementKey = "element-6066-11e4-a52e-4f735466cecf"

type SeleniumController struct {
	wd           selenium.WebDriver
	service      *selenium.Service
	logger       *logrus.Logger
	userDataDir  string
	waitTimeout  time.Duration
	waitInterval time.Duration
}

// findChromeDriver - finds ChromeDriver executable path
func findChromeDriver(configured string) (string, error) {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured, nil
		}
	}

	commonPaths := []string{
		"/usr/local/bin/chromedriver",
		"/usr/bin/chromedriver",
		"/opt/homebrew/bin/chromedriver",
		filepath.Join(os.Getenv("HOME"), "bin", "chromedriver"),
	}

	for _, path := range commonPaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	if path, err := exec.LookPath("chromedriver"); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("chromedriver not found. Please install it or set BROWSER_DRIVER_PATH environment variable")
}

// findChromeBinary - finds Chrome/Chromium browser executable path
func findChromeBinary(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
	}

	chromePaths := []string{
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
		"/Applications/Chromium.app/Contents/MacOS/Chromium",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		`C:\Program Files\Google\Chrome\Application\chrome.exe`,
		`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
	}

	for _, path := range chromePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	for _, name := range []string{"google-chrome", "chromium", "chromium-browser"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	return ""
}

// getOrCreateUserDataDir - gets or creates user data directory for the driven browser
func getOrCreateUserDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}

	userDataDir := filepath.Join(homeDir, ".declarative_elements", "chrome_profile")
	if err := os.MkdirAll(userDataDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create user data directory: %w", err)
	}

	return userDataDir, nil
}

// NewSeleniumController - starts ChromeDriver and opens a WebDriver session
func NewSeleniumController(cfg *config.Config, logger *logrus.Logger) (*SeleniumController, error) {
	driverPath, err := findChromeDriver(cfg.DriverPath)
	if err != nil {
		return nil, fmt.Errorf("failed to find chromedriver: %w", err)
	}

	logger.Infof("Using ChromeDriver at: %s", driverPath)

	chromeBinary := findChromeBinary(cfg.ChromeBinary)
	if chromeBinary != "" {
		logger.Infof("Using Chrome binary at: %s", chromeBinary)
	}

	userDataDir, err := getOrCreateUserDataDir()
	if err != nil {
		return nil, fmt.Errorf("failed to setup user data directory: %w", err)
	}
	logger.Debugf("Using user data directory: %s", userDataDir)

	service, err := selenium.NewChromeDriverService(driverPath, cfg.DriverPort)
	if err != nil {
		return nil, fmt.Errorf("failed to start chromedriver: %w", err)
	}

	caps := selenium.Capabilities{
		"browserName": "chrome",
	}

	chromeCaps := chrome.Capabilities{
		Args: []string{
			"--disable-dev-shm-usage",
			"--no-sandbox",
			fmt.Sprintf("--user-data-dir=%s", userDataDir),
		},
	}
	if cfg.Headless {
		chromeCaps.Args = append(chromeCaps.Args, "--headless=new")
	}

	if chromeBinary != "" {
		chromeCaps.Path = chromeBinary
	}

	caps.AddChrome(chromeCaps)

	wd, err := selenium.NewRemote(caps, fmt.Sprintf("http://localhost:%d/wd/hub", cfg.DriverPort))
	if err != nil {
		service.Stop()
		if strings.Contains(err.Error(), "cannot find Chrome binary") {
			return nil, fmt.Errorf("failed to create webdriver: Chrome browser not found. Please install Google Chrome or set CHROME_BINARY_PATH environment variable. Error: %w", err)
		}
		return nil, fmt.Errorf("failed to create webdriver: %w", err)
	}

	return &SeleniumController{
		wd:           wd,
		service:      service,
		logger:       logger,
		userDataDir:  userDataDir,
		waitTimeout:  cfg.WaitTimeout,
		waitInterval: cfg.WaitInterval,
	}, nil
}

// Navigate - navigates browser to specified URL
func (s *SeleniumController) Navigate(ctx context.Context, url string) error {
	s.logger.Infof("Navigating to: %s", url)
	return s.wd.Get(url)
}

// Root - returns the WebDriver session as an anchor
func (s *SeleniumController) Root() interfaces.Reference {
	return &seleniumRoot{wd: s.wd}
}

// CurrentURL - returns current page URL
func (s *SeleniumController) CurrentURL(ctx context.Context) (string, error) {
	return s.wd.CurrentURL()
}

// Title - returns current page title
func (s *SeleniumController) Title(ctx context.Context) (string, error) {
	return s.wd.Title()
}

// Until - polls route from anchor with WebDriver's own wait loop. Lookup
// failures keep the wait going and the last one is reported on timeout;
// permanent errors (entities.IsPermanent) end it at once.
func (s *SeleniumController) Until(ctx context.Context, route binding.HandleRoute, anchor interfaces.Anchor) (binding.Result, error) {
	timeout := s.waitTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}

	var (
		result  binding.Result
		lastErr error
	)
	condition := func(selenium.WebDriver) (bool, error) {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		res, err := route(anchor)
		if err != nil {
			if entities.IsPermanent(err) {
				return false, err
			}
			lastErr = err
			return false, nil
		}
		result = res
		return true, nil
	}

	if err := s.wd.WaitWithTimeoutAndInterval(condition, timeout, s.waitInterval); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return binding.Result{}, ctxErr
		}
		if entities.IsPermanent(err) {
			return binding.Result{}, err
		}
		if lastErr != nil {
			return binding.Result{}, fmt.Errorf("wait timed out: %w", lastErr)
		}
		return binding.Result{}, fmt.Errorf("wait failed: %w", err)
	}
	return result, nil
}

// Close - closes browser and stops ChromeDriver service
func (s *SeleniumController) Close() error {
	var closeErr error
	if s.wd != nil {
		if err := s.wd.Quit(); err != nil {
			closeErr = fmt.Errorf("failed to quit webdriver: %w", err)
		}
		s.wd = nil
	}
	if s.service != nil {
		if err := s.service.Stop(); err != nil && closeErr == nil {
			closeErr = fmt.Errorf("failed to stop chromedriver: %w", err)
		}
		s.service = nil
	}
	return closeErr
}

// seleniumRoot is the WebDriver session used as an anchor
type seleniumRoot struct {
	wd selenium.WebDriver
}

func (r *seleniumRoot) ID() string {
	return "session-" + r.wd.SessionID()
}

func (r *seleniumRoot) FindElement(by, value string) (interfaces.Element, error) {
	we, err := r.wd.FindElement(by, value)
	if err != nil {
		return nil, err
	}
	el, err := newSeleniumElement(we)
	if err != nil {
		return nil, err
	}
	return el, nil
}

func (r *seleniumRoot) FindElements(by, value string) ([]interfaces.Element, error) {
	wes, err := r.wd.FindElements(by, value)
	if err != nil {
		return nil, err
	}
	return newSeleniumElements(wes)
}

// seleniumElement adapts selenium.WebElement, with identity taken from the
// element reference sent on the wire
type seleniumElement struct {
	we selenium.WebElement
	id string
}

func newSeleniumElement(we selenium.WebElement) (*seleniumElement, error) {
	id, err := elementID(we)
	if err != nil {
		return nil, err
	}
	return &seleniumElement{we: we, id: id}, nil
}

func newSeleniumElements(wes []selenium.WebElement) ([]interfaces.Element, error) {
	elements := make([]interfaces.Element, 0, len(wes))
	for _, we := range wes {
		el, err := newSeleniumElement(we)
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
	}
	return elements, nil
}

// elementID - extracts the WebDriver element id from its JSON form
func elementID(we selenium.WebElement) (string, error) {
	m, ok := we.(json.Marshaler)
	if !ok {
		return "", fmt.Errorf("element %T has no wire reference", we)
	}
	data, err := m.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("failed to encode element reference: %w", err)
	}
	return parseElementID(data)
}

// parseElementID - reads the element id from a W3C or legacy element reference
func parseElementID(data []byte) (string, error) {
	var ref map[string]string
	if err := json.Unmarshal(data, &ref); err != nil {
		return "", fmt.Errorf("failed to decode element reference: %w", err)
	}
	if id := ref[w3cElementKey]; id != "" {
		return id, nil
	}
	if id := ref["ELEMENT"]; id != "" {
		return id, nil
	}
	return "", fmt.Errorf("element reference without id: %s", data)
}

func (e *seleniumElement) ID() string { return e.id }

func (e *seleniumElement) FindElement(by, value string) (interfaces.Element, error) {
	we, err := e.we.FindElement(by, value)
	if err != nil {
		return nil, err
	}
	el, err := newSeleniumElement(we)
	if err != nil {
		return nil, err
	}
	return el, nil
}

func (e *seleniumElement) FindElements(by, value string) ([]interfaces.Element, error) {
	wes, err := e.we.FindElements(by, value)
	if err != nil {
		return nil, err
	}
	return newSeleniumElements(wes)
}

func (e *seleniumElement) TagName() (string, error) {
	tag, err := e.we.TagName()
	return strings.ToLower(tag), err
}

func (e *seleniumElement) Text() (string, error) { return e.we.Text() }

// GetAttribute returns "" for absent attributes, which WebDriver reports as null
func (e *seleniumElement) GetAttribute(name string) (string, error) {
	v, err := e.we.GetAttribute(name)
	if err != nil && strings.Contains(err.Error(), "nil return value") {
		return "", nil
	}
	return v, err
}

func (e *seleniumElement) Click() error { return e.we.Click() }

func (e *seleniumElement) SendKeys(keys string) error { return e.we.SendKeys(keys) }

func (e *seleniumElement) Clear() error { return e.we.Clear() }
