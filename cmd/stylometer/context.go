package main

import (
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"stylometer/internal/config"
	"stylometer/internal/logging"
	"stylometer/internal/workspace"
)

type commandContext struct {
	configFlag    *string
	workspaceFlag *string

	configOnce sync.Once
	config     *config.Config
	logger     zerolog.Logger
	configErr  error
}

func newCommandContext(configFlag, workspaceFlag *string) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		workspaceFlag: workspaceFlag,
		logger:        zerolog.Nop(),
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		root := strings.TrimSpace(*c.workspaceFlag)
		var err error
		if root == "" {
			root, err = workspace.EnsureDefault()
		} else {
			root, err = workspace.EnsureAt(root)
		}
		if err != nil {
			c.configErr = err
			return
		}

		path := strings.TrimSpace(*c.configFlag)
		explicit := path != ""
		if !explicit {
			path = workspace.SettingsPath(root)
		}
		cfg, err := config.Load(path, explicit, root)
		if err != nil {
			c.configErr = err
			return
		}
		logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = &cfg
		c.logger = logger
	})
	return c.config, c.configErr
}
