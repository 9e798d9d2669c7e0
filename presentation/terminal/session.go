package terminal

import (
	"fmt"

	"declarative_elements/application/binding"
	"declarative_elements/domain/interfaces"
	"declarative_elements/infrastructure/browser"
	"declarative_elements/infrastructure/config"
	"declarative_elements/infrastructure/htmldoc"
	"declarative_elements/infrastructure/wait"

	"github.com/sirupsen/logrus"
)

// OpenSession - starts the configured backend and picks its waiter. Selenium
// waits with WebDriver's own loop, the other backends with the poller.
func OpenSession(cfg *config.Config, logger *logrus.Logger) (interfaces.Session, binding.Waiter, error) {
	poller := wait.NewPoller(cfg.WaitTimeout, cfg.WaitInterval, logger)

	switch cfg.Backend {
	case config.BackendSelenium:
		ctrl, err := browser.NewSeleniumController(cfg, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize browser: %w", err)
		}
		return ctrl, ctrl, nil
	case config.BackendPlaywright:
		ctrl, err := browser.NewPlaywrightController(cfg, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize browser: %w", err)
		}
		return ctrl, poller, nil
	case config.BackendHTML:
		return htmldoc.NewSession(logger, cfg.WaitTimeout), poller, nil
	}
	return nil, nil, fmt.Errorf("unknown browser backend %q", cfg.Backend)
}
