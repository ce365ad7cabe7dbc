// Command projectr packs a project directory into a single text container
// and unpacks such containers back into a directory tree.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
