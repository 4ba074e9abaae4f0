package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_parseFlags_Overrides(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin",
		"-a", ":3000",
		"-m", "mongodb://flags:27017",
		"-n", "flagsdb",
		"-s", "flag_secret",
		"-k", "signed",
		"-t", "24",
		"-b", "10",
	}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, cfg.EndpointAddrHTTP, ":3000")
	assert.Equal(t, cfg.MongoURI, "mongodb://flags:27017")
	assert.Equal(t, cfg.DatabaseName, "flagsdb")
	assert.Equal(t, cfg.SecretKey, "flag_secret")
	assert.Equal(t, cfg.TokenMode, "signed")
	assert.Equal(t, cfg.SessionValidityDuration, 24*time.Hour)
	assert.Equal(t, cfg.BcryptCost, 10)
}

func Test_parseFlags_IgnoresForeignFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin", "-a", ":3000", "-unknown", "value"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, cfg.EndpointAddrHTTP, ":3000")
	assert.Equal(t, cfg.MongoURI, "mongodb://localhost:27017")
}
