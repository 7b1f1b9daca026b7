package main

import (
	cmd "github.com/vera-byte/vgo-admin/cmd"
	vgokit "github.com/vera-byte/vgo-kit"
	"go.uber.org/zap"
)

// main VGO 管理控制台入口
func main() {
	if err := cmd.RootCmd.Execute(); err != nil {
		vgokit.Log.Fatal("Failed to execute command", zap.Error(err))
	}
}
