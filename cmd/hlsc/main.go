package main

import (
	"os"
	"os/signal"
	"syscall"
)

func main() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Println("received termination signal, exiting")
		os.Exit(1)
	}()

	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		logger.Fatalf("%v", err)
	}
}
