package main

import "os"

func main() {
	if err := newRootCmd(connectLive).Execute(); err != nil {
		os.Exit(1)
	}
}
