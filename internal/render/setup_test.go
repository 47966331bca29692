package render

import (
	"os"
	"testing"
	"ursa-server/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}
