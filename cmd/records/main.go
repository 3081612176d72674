package main

import (
	"context"
	"os"

	"github.com/yigit/unirecords/internal/cli"
	"github.com/yigit/unirecords/internal/pkg/logger"
)

// @title UniRecords API
// @version 1.0
// @description University records store: departments, faculty, students, courses, enrollments and exams
// @BasePath /api/v1
// @schemes http https

func main() {
	if err := cli.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		logger.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
