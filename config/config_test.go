package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type (
	TestConfig struct {
		Foo *FooTestConfig
		Bar *BarTestConfig
	}
	FooTestConfig struct {
		Hello string
		World int
	}
	BarTestConfig struct {
		First  int `default:"42"`
		Second int
	}
	MultipleWordsConfig struct {
		FooBar     int
		CustomerID int
		Enabled    bool `default:"true"`
	}
	ValidatedConfig struct {
		Workers int `default:"1"`
	}
)

func (c *ValidatedConfig) Validate() error {
	if c.Workers <= 0 {
		return errors.New("workers must be positive")
	}
	return nil
}

func TestLoad(t *testing.T) {
	t.Run("it should load basic struct", func(t *testing.T) {
		// GIVEN
		t.Setenv("FOO_HELLO", "waldo")
		t.Setenv("FOO_WORLD", "23")

		// WHEN
		conf, err := Load[FooTestConfig](WithEnvPrefix("FOO"))

		// THEN
		require.NoError(t, err)
		assert.Equal(t, "waldo", conf.Hello)
		assert.Equal(t, 23, conf.World)
	})

	t.Run("it should load nested structs from env vars", func(t *testing.T) {
		// GIVEN
		t.Setenv("TEST_FOO_HELLO", "waldo")
		t.Setenv("TEST_FOO_WORLD", "23")
		t.Setenv("TEST_BAR_FIRST", "12")
		t.Setenv("TEST_BAR_SECOND", "66")

		// WHEN
		conf, err := Load[TestConfig](WithEnvPrefix("TEST"))

		// THEN
		require.NoError(t, err)
		assert.Equal(t, "waldo", conf.Foo.Hello)
		assert.Equal(t, 23, conf.Foo.World)
		assert.Equal(t, 12, conf.Bar.First)
		assert.Equal(t, 66, conf.Bar.Second)
	})

	t.Run("it should apply default tags when env vars are missing", func(t *testing.T) {
		// WHEN
		conf, err := Load[TestConfig](WithEnvPrefix("TEST"))

		// THEN
		require.NoError(t, err)
		require.NotNil(t, conf.Foo)
		assert.Equal(t, "", conf.Foo.Hello)
		assert.Equal(t, 42, conf.Bar.First)
		assert.Equal(t, 0, conf.Bar.Second)
	})

	t.Run("it should bind correctly multiple words variables", func(t *testing.T) {
		// GIVEN
		t.Setenv("TEST_FOO_BAR", "12")
		t.Setenv("TEST_CUSTOMER_ID", "66")
		t.Setenv("TEST_ENABLED", "false")

		// WHEN
		conf, err := Load[MultipleWordsConfig](WithEnvPrefix("TEST"))

		// THEN
		require.NoError(t, err)
		assert.Equal(t, 12, conf.FooBar)
		assert.Equal(t, 66, conf.CustomerID)
		assert.False(t, conf.Enabled)
	})

	t.Run("it should reject invalid config", func(t *testing.T) {
		// GIVEN
		t.Setenv("TEST_WORKERS", "0")

		// WHEN
		conf, err := Load[ValidatedConfig](WithEnvPrefix("TEST"))

		// THEN
		assert.Nil(t, conf)
		assert.ErrorContains(t, err, "workers must be positive")
	})

	t.Run("it should report unparsable values", func(t *testing.T) {
		// GIVEN
		t.Setenv("TEST_WORKERS", "many")

		// WHEN
		_, err := Load[ValidatedConfig](WithEnvPrefix("TEST"))

		// THEN
		assert.ErrorContains(t, err, "unable to unmarshal config")
	})
}
