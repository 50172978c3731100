package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/resumesavvy/interview-agent/internal/builder"
	"github.com/resumesavvy/interview-agent/internal/entity"
	"go.uber.org/zap"
)

func main() {
	// Registered before config loading, which performs the actual flag.Parse.
	resumePath := flag.String("resume", "", "path to the candidate's resume (PDF)")
	reportFormat := flag.String("format", "markdown", "report format: markdown, docx or pdf")

	w, logger, err := builder.BuildWizard()
	if err != nil {
		log.Fatal("Failed to build wizard:", err)
	}
	defer logger.Sync()

	if *resumePath == "" {
		log.Fatal("missing required -resume flag")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	if err := w.Run(ctx, *resumePath, entity.ResultFormat(*reportFormat)); err != nil {
		logger.Error("wizard failed", zap.Error(err))
		os.Exit(1)
	}
}
