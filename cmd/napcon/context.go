package main

import (
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"napcon/internal/config"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

// expandFlag applies the config path rules to a changed path flag.
func expandFlag(cmd *cobra.Command, name, value string, target *string) error {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	expanded, err := config.ExpandPath(strings.TrimSpace(value))
	if err != nil {
		return err
	}
	*target = expanded
	return nil
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
