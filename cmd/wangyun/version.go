// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/wangyun/internal/fetch"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of wangyun",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("wangyun %s\n", version)
	},
}

func userAgent(contact string) string {
	return fetch.UserAgent(version, contact)
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
