package service

import (
	"os"
	"testing"

	"github.com/4ndreams/GPS-sub000/pkg/logger"
	"github.com/4ndreams/GPS-sub000/pkg/util"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	logger.Initialize(logger.Config{Level: "error", Format: "json"})
	util.BcryptCost = bcrypt.MinCost
	os.Exit(m.Run())
}
