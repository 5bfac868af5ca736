package main

import (
	"github.com/spf13/cobra"

	"github.com/rushteam/feedrank/config"
	"github.com/rushteam/feedrank/logging"
)

// loadSettings 读取 --config 指定的配置并初始化日志。
func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	path, _ := cmd.Flags().GetString("config")
	s, err := config.LoadSettings(path)
	if err != nil {
		return nil, err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		s.Logging.Level = lvl
	}
	lc := s.Logging
	lc.Output = cmd.ErrOrStderr()
	logging.Init(lc)
	return s, nil
}
