package loadcheck

import (
	"io"
	"os"
	"testing"

	"github.com/victorezeilo/TDD-Prompt-Engineering/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.InitWithOptions(logger.WithWriter(io.Discard)); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}
