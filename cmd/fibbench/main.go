package main

import (
	"context"
	"fmt"
	"os"

	"github.com/agbru/fibbench/internal/app"
	apperrors "github.com/agbru/fibbench/internal/errors"
)

func main() {
	application, err := app.New(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fibbench: %v\n", err)
		os.Exit(apperrors.ExitCodeFor(err))
	}

	exitCode := application.Run(context.Background(), os.Stdout)
	os.Exit(exitCode)
}
