package browser

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"declarative_elements/domain/entities"
	"declarative_elements/domain/interfaces"
	"declarative_elements/infrastructure/config"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
)

// ErrNoSuchElement is returned by playwright anchors when nothing matches
var ErrNoSuchElement = errors.New("no such element")

// identityScript tags a DOM node with a stable key the first time it is seen,
// so two handles to the same node compare equal
const identityScript = `el => el.__declarativeKey || (el.__declarativeKey = Math.random().toString(36).slice(2) + Date.now().toString(36))`

type PlaywrightController struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
	logger  *logrus.Logger
}

// NewPlaywrightController - launches chromium through playwright and opens a page
func NewPlaywrightController(cfg *config.Config, logger *logrus.Logger) (*PlaywrightController, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	launchOptions := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
		Args: []string{
			"--disable-dev-shm-usage",
			"--no-sandbox",
		},
	}
	if cfg.ChromeBinary != "" {
		launchOptions.ExecutablePath = playwright.String(cfg.ChromeBinary)
	}

	browser, err := pw.Chromium.Launch(launchOptions)
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	context, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  1280,
			Height: 720,
		},
	})
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := context.NewPage()
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	logger.Info("Playwright chromium session started")

	return &PlaywrightController{
		pw:      pw,
		browser: browser,
		context: context,
		page:    page,
		logger:  logger,
	}, nil
}

// Navigate - navigates to the specified URL
func (b *PlaywrightController) Navigate(ctx context.Context, url string) error {
	b.logger.Infof("Navigating to: %s", url)
	_, err := b.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   playwright.Float(30000),
	})
	return err
}

// Root - returns the current page as an anchor
func (b *PlaywrightController) Root() interfaces.Reference {
	return &playwrightRoot{page: b.page}
}

// CurrentURL - returns the current page URL
func (b *PlaywrightController) CurrentURL(ctx context.Context) (string, error) {
	return b.page.URL(), nil
}

// Title - returns the current page title
func (b *PlaywrightController) Title(ctx context.Context) (string, error) {
	return b.page.Title()
}

// Close - closes the context, the browser and the playwright driver
func (b *PlaywrightController) Close() error {
	var closeErr error

	if b.context != nil {
		if err := b.context.Close(); err != nil && !isClosedError(err) {
			closeErr = fmt.Errorf("failed to close context: %w", err)
		}
		b.context = nil
	}

	if b.browser != nil {
		if err := b.browser.Close(); err != nil && !isClosedError(err) {
			if closeErr != nil {
				closeErr = fmt.Errorf("%v; failed to close browser: %w", closeErr, err)
			} else {
				closeErr = fmt.Errorf("failed to close browser: %w", err)
			}
		}
		b.browser = nil
	}

	if b.pw != nil {
		if err := b.pw.Stop(); err != nil && closeErr == nil {
			closeErr = fmt.Errorf("failed to stop playwright: %w", err)
		}
		b.pw = nil
	}

	return closeErr
}

func isClosedError(err error) bool {
	errStr := err.Error()
	return strings.Contains(errStr, "closed") || strings.Contains(errStr, "target closed")
}

// playwrightSelector - translates a WebDriver location strategy into a
// playwright selector
func playwrightSelector(by, value string) (string, error) {
	switch by {
	case entities.ByCSSSelector:
		return "css=" + value, nil
	case entities.ByXPATH:
		return "xpath=" + value, nil
	case entities.ByID:
		return fmt.Sprintf("css=[id=%s]", strconv.Quote(value)), nil
	case entities.ByName:
		return fmt.Sprintf("css=[name=%s]", strconv.Quote(value)), nil
	case entities.ByTagName:
		return "css=" + value, nil
	case entities.ByClassName:
		return fmt.Sprintf("css=[class~=%s]", strconv.Quote(value)), nil
	case entities.ByLinkText:
		return fmt.Sprintf("xpath=.//a[normalize-space(.)=%s]", xpathLiteral(value)), nil
	case entities.ByPartialLinkText:
		return fmt.Sprintf("xpath=.//a[contains(normalize-space(.), %s)]", xpathLiteral(value)), nil
	}
	return "", &entities.ConfigError{
		Reason: "selector kind is not supported",
		Value:  by,
		Valid:  entities.SupportedSelectorKinds(),
	}
}

// xpathLiteral - quotes s as an XPath 1.0 string literal
func xpathLiteral(s string) string {
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	if !strings.Contains(s, `'`) {
		return `'` + s + `'`
	}
	parts := strings.Split(s, `"`)
	quoted := make([]string, len(parts))
	for i, p := range parts {
		quoted[i] = `"` + p + `"`
	}
	return "concat(" + strings.Join(quoted, `, '"', `) + ")"
}

// playwrightRoot is the current page used as an anchor
type playwrightRoot struct {
	page playwright.Page
}

func (r *playwrightRoot) ID() string {
	return fmt.Sprintf("page-%p", r.page)
}

func (r *playwrightRoot) FindElement(by, value string) (interfaces.Element, error) {
	selector, err := playwrightSelector(by, value)
	if err != nil {
		return nil, err
	}
	eh, err := r.page.QuerySelector(selector)
	if err != nil {
		return nil, err
	}
	return newPlaywrightElement(eh, by, value)
}

func (r *playwrightRoot) FindElements(by, value string) ([]interfaces.Element, error) {
	selector, err := playwrightSelector(by, value)
	if err != nil {
		return nil, err
	}
	ehs, err := r.page.QuerySelectorAll(selector)
	if err != nil {
		return nil, err
	}
	return newPlaywrightElements(ehs)
}

// playwrightElement adapts playwright.ElementHandle
type playwrightElement struct {
	eh playwright.ElementHandle
	id string
}

func newPlaywrightElement(eh playwright.ElementHandle, by, value string) (interfaces.Element, error) {
	if eh == nil {
		return nil, fmt.Errorf("%w: unable to locate element by %s %q", ErrNoSuchElement, by, value)
	}
	key, err := eh.Evaluate(identityScript)
	if err != nil {
		return nil, fmt.Errorf("failed to read element identity: %w", err)
	}
	id, ok := key.(string)
	if !ok {
		return nil, fmt.Errorf("unexpected element identity %T", key)
	}
	return &playwrightElement{eh: eh, id: id}, nil
}

func newPlaywrightElements(ehs []playwright.ElementHandle) ([]interfaces.Element, error) {
	elements := make([]interfaces.Element, 0, len(ehs))
	for _, eh := range ehs {
		el, err := newPlaywrightElement(eh, "", "")
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
	}
	return elements, nil
}

func (e *playwrightElement) ID() string { return e.id }

func (e *playwrightElement) FindElement(by, value string) (interfaces.Element, error) {
	selector, err := playwrightSelector(by, value)
	if err != nil {
		return nil, err
	}
	eh, err := e.eh.QuerySelector(selector)
	if err != nil {
		return nil, err
	}
	return newPlaywrightElement(eh, by, value)
}

func (e *playwrightElement) FindElements(by, value string) ([]interfaces.Element, error) {
	selector, err := playwrightSelector(by, value)
	if err != nil {
		return nil, err
	}
	ehs, err := e.eh.QuerySelectorAll(selector)
	if err != nil {
		return nil, err
	}
	return newPlaywrightElements(ehs)
}

func (e *playwrightElement) TagName() (string, error) {
	v, err := e.eh.Evaluate("el => el.tagName.toLowerCase()")
	if err != nil {
		return "", err
	}
	tag, _ := v.(string)
	return tag, nil
}

func (e *playwrightElement) Text() (string, error) { return e.eh.InnerText() }

func (e *playwrightElement) GetAttribute(name string) (string, error) {
	return e.eh.GetAttribute(name)
}

func (e *playwrightElement) Click() error { return e.eh.Click() }

func (e *playwrightElement) SendKeys(keys string) error { return e.eh.Type(keys) }

func (e *playwrightElement) Clear() error { return e.eh.Fill("") }
