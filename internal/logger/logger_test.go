package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestL_InitializesLazily(t *testing.T) {
	log = nil

	l := L()

	assert.NotNil(t, l)
	assert.NotPanics(t, func() { l.Debug("lazy init works") })
}

func TestInit_Production(t *testing.T) {
	Init("production")

	assert.NotNil(t, log)
	assert.NotPanics(t, func() { L().Info("production encoder works") })
}

func TestNamed(t *testing.T) {
	Init("development")

	l := Named("cart")

	assert.NotNil(t, l)
	assert.NotPanics(t, func() { l.Debug("named logger works") })
}
