package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGinMode(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"production", "release"},
		{"prod", "release"},
		{"release", "release"},
		{"test", "test"},
		{"testing", "test"},
		{"development", "debug"},
		{"", "debug"},
		{"staging", "debug"},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			assert.Equal(t, tt.want, GinMode(tt.env))
		})
	}
}

func TestEnv_PrefersEnvironmentVariable(t *testing.T) {
	t.Setenv("ENV", "production")
	assert.Equal(t, "production", Env("development"))
}

func TestEnv_FallsBackToFlag(t *testing.T) {
	t.Setenv("ENV", "")
	assert.Equal(t, "test", Env("test"))
}

func TestRuntime_CloseRunsInReverseOrder(t *testing.T) {
	var order []int
	rt := &Runtime{closers: []func(){
		func() { order = append(order, 1) },
		func() { order = append(order, 2) },
	}}

	rt.Close()

	assert.Equal(t, []int{2, 1}, order)
}
