package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/a-peyrard/syncseq/option"
	"github.com/a-peyrard/syncseq/reflectutils"
	"github.com/a-peyrard/syncseq/str"
	"github.com/spf13/viper"
)

type (
	Options struct {
		prefix string
	}

	// Validator is implemented by configurations checking themselves once loaded.
	Validator interface {
		Validate() error
	}
)

func WithEnvPrefix(prefix string) option.Option[Options] {
	return func(opts *Options) {
		opts.prefix = prefix
	}
}

// Load builds a T from environment variables.
//
// Each leaf field is bound to PREFIX_PATH_TO_FIELD, in screaming snake case, and
// falls back to the value of its `default` tag when the variable is not set.
func Load[T any](opts ...option.Option[Options]) (*T, error) {
	options := option.Build(&Options{}, opts...)

	v := viper.New()
	v.SetEnvPrefix(options.prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var vT T
	if err := bindFields(v, options.prefix, &vT); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&vT); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}

	if validator, ok := any(&vT).(Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
	}

	return &vT, nil
}

func bindFields(v *viper.Viper, envPrefix string, target any) error {
	var err error
	reflectutils.WalkFields(target, func(_ reflect.Value, field reflect.StructField, path []string) {
		if err != nil || reflectutils.IsStruct(field.Type) {
			return
		}
		key := strings.Join(path, ".")
		if bindErr := v.BindEnv(key, str.ToEnvKey(envPrefix, path...)); bindErr != nil {
			err = fmt.Errorf("unable to bind env for %s: %w", key, bindErr)
			return
		}
		if def, ok := field.Tag.Lookup("default"); ok {
			v.SetDefault(key, def)
		}
	})
	return err
}
